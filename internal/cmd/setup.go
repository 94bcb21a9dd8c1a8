package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/sheetstock/internal/config"
	"github.com/matthieukhl/sheetstock/internal/database"
	"github.com/matthieukhl/sheetstock/internal/models"
	"github.com/matthieukhl/sheetstock/internal/spreadsheet"
)

var (
	workbookDir string
	skipData    bool
)

var setupWorkbookCmd = &cobra.Command{
	Use:   "setup-workbook",
	Short: "Create local .xlsx workbooks for the xlsx driver",
	Long: `Creates the products and deliveries workbooks under --dir with their
header rows, and fills the products worksheet with sample ice-cream
products, flavors and toppings.

Point source.driver=xlsx and source.workbook_dir at the same directory to
run the API without Google credentials.`,
	RunE: setupWorkbook,
}

var setupJournalCmd = &cobra.Command{
	Use:   "setup-journal",
	Short: "Create the delivery_events table in the configured MySQL database",
	RunE:  setupJournal,
}

func init() {
	rootCmd.AddCommand(setupWorkbookCmd, setupJournalCmd)

	setupWorkbookCmd.Flags().StringVar(&workbookDir, "dir", "./data", "Directory for the workbooks")
	setupWorkbookCmd.Flags().BoolVar(&skipData, "schema-only", false, "Create headers only, skip sample data")
}

func setupWorkbook(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("🔧 Setting up workbooks in %s...\n", workbookDir)
	src := spreadsheet.NewWorkbookSource(workbookDir)
	added, err := seedSource(cmd.Context(), src, &cfg.Sheets, !skipData)
	if err != nil {
		return err
	}

	switch {
	case skipData:
		fmt.Println("✅ Workbook schema ready")
	case added == 0:
		fmt.Println("ℹ️  Products worksheet already has rows, skipping sample data")
	default:
		fmt.Printf("   🍦 Added %d products, flavors and toppings\n", added)
		fmt.Println("✅ Workbooks ready")
	}
	return nil
}

// seedSource creates both worksheets with their headers and, when withData is
// set and the products worksheet is empty, fills it with sampleProducts.
// It returns the number of product rows added.
func seedSource(ctx context.Context, src spreadsheet.Source, sheets *config.SheetsConfig, withData bool) (int, error) {
	if err := src.EnsureWorksheet(ctx, sheets.ProductsID, sheets.ProductsWorksheet, models.ProductHeader); err != nil {
		return 0, fmt.Errorf("failed to create products worksheet: %w", err)
	}
	if err := src.EnsureWorksheet(ctx, sheets.DeliveriesID, sheets.DeliveriesWorksheet, models.DeliveryHeader); err != nil {
		return 0, fmt.Errorf("failed to create deliveries worksheet: %w", err)
	}
	if !withData {
		return 0, nil
	}

	existing, err := src.FetchRecords(ctx, sheets.ProductsID, sheets.ProductsWorksheet)
	if err != nil && !errors.Is(err, spreadsheet.ErrEmptyWorksheet) {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, p := range sampleProducts {
		if err := src.AppendRecord(ctx, sheets.ProductsID, sheets.ProductsWorksheet, p.Row()); err != nil {
			return i, fmt.Errorf("failed to add %s: %w", p.Code, err)
		}
	}
	return len(sampleProducts), nil
}

var sampleProducts = []models.Product{
	{Code: "CN-01", Name: "Cono Sencillo", SellPrice: 3500, Category: "Conos", FlavorCount: 1, Stock: 40},
	{Code: "CN-02", Name: "Cono Doble", SellPrice: 5500, Category: "Conos", FlavorCount: 2, ToppingCount: 1, Stock: 35},
	{Code: "CP-01", Name: "Copa Familiar", SellPrice: 18000, Category: "Copas", FlavorCount: 4, ToppingCount: 3, Stock: 10},
	{Code: "SD-01", Name: "Sundae de Chocolate", SellPrice: 8500, Category: "Postres", FlavorCount: 2, ToppingCount: 2, Stock: 15},
	{Code: "MT-01", Name: "Malteada de Fresa", SellPrice: 9000, Category: "Bebidas", FlavorCount: 1, Stock: 20},
	{Code: "SB-01", Name: "Chocolate", Category: "Sabores_Helado"},
	{Code: "SB-02", Name: "Vainilla", Category: "Sabores_Helado"},
	{Code: "SB-03", Name: "Maracuyá", Category: "Sabores_Helado"},
	{Code: "TP-01", Name: "Chispas de Chocolate", Category: "Toppings"},
	{Code: "TP-02", Name: "Salsa de Mora", Category: "Toppings"},
}

func setupJournal(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DB.DSN == "" {
		return errors.New("db.dsn is not configured")
	}

	fmt.Println("🔌 Connecting to database...")
	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	fmt.Println("📋 Creating delivery_events table...")
	if err := db.EnsureSchema(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("✅ Journal schema ready")
	return nil
}
