package spreadsheet

import (
	"context"
	"fmt"
	"os"

	"github.com/matthieukhl/sheetstock/internal/config"
)

// NewSource creates a Source based on configuration
func NewSource(ctx context.Context, cfg *config.SourceConfig) (Source, error) {
	switch cfg.Driver {
	case "google":
		creds := ResolveCredentials(os.Getenv, cfg.CredentialsFile)
		return NewGoogleSource(ctx, creds.ClientOptions()...)
	case "xlsx":
		return NewWorkbookSource(cfg.WorkbookDir), nil
	case "memory":
		return NewMemorySource(), nil
	default:
		return nil, fmt.Errorf("unsupported source driver: %s", cfg.Driver)
	}
}
