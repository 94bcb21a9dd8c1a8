package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/matthieukhl/sheetstock/internal/server"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Sheetstock API server",
	Long: `Start the Sheetstock API server which provides:
- stock, product and flavor/topping lookups
- delivery registration and payment/delivery status updates
- a health endpoint at /api/health`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	gin.SetMode(a.cfg.Server.Mode)

	srv := server.NewServer(server.Deps{
		Inventory:  a.inventory,
		Deliveries: a.deliveries,
		Source:     a.source,
		ProductsID: a.cfg.Sheets.ProductsID,
		DB:         a.db,
		Logger:     a.log,
	})

	a.log.Info().
		Str("addr", a.cfg.Server.Addr).
		Str("driver", a.cfg.Source.Driver).
		Bool("journal", a.db != nil).
		Msg("starting server")
	if err := srv.Start(a.cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
