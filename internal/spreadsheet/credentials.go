package spreadsheet

import (
	"encoding/base64"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const driveScope = "https://www.googleapis.com/auth/drive"

// Credentials holds a service account key, either as a file or inline JSON.
type Credentials struct {
	File string
	JSON []byte
}

// ResolveCredentials looks up the service account key in this order:
// GOOGLE_APPLICATION_CREDENTIALS (file path), GOOGLE_SERVICE_ACCOUNT_B64 or
// GOOGLE_SERVICE_ACCOUNT (base64 blob, raw JSON tolerated), then defaultFile.
func ResolveCredentials(getenv func(string) string, defaultFile string) Credentials {
	if path := getenv("GOOGLE_APPLICATION_CREDENTIALS"); path != "" {
		return Credentials{File: path}
	}

	blob := getenv("GOOGLE_SERVICE_ACCOUNT_B64")
	if blob == "" {
		blob = getenv("GOOGLE_SERVICE_ACCOUNT")
	}
	if blob != "" {
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(blob))
		if err != nil {
			data = []byte(blob)
		}
		return Credentials{JSON: data}
	}

	return Credentials{File: defaultFile}
}

// ClientOptions returns the API options authenticating with c.
func (c Credentials) ClientOptions() []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope, driveScope)}
	if len(c.JSON) > 0 {
		return append(opts, option.WithCredentialsJSON(c.JSON))
	}
	return append(opts, option.WithCredentialsFile(c.File))
}
