package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/matthieukhl/sheetstock/internal/models"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export-inventory",
	Short: "Export products, flavors and toppings to an .xlsx report",
	RunE:  exportInventory,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "inventario.xlsx", "Output file")
}

func exportInventory(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	products, err := a.inventory.ListProducts(cmd.Context())
	if err != nil {
		return err
	}
	addOns, err := a.inventory.ListFlavorsAndToppings(cmd.Context())
	if err != nil {
		return err
	}

	f, err := buildInventoryReport(products, addOns)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(exportOut); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	fmt.Printf("✅ Exported %d products, %d flavors and %d toppings to %s\n",
		len(products), len(addOns.Flavors), len(addOns.Toppings), exportOut)
	return nil
}

type reportGroup struct {
	sheet string
	items []models.Product
}

// buildInventoryReport writes one worksheet per product group.
func buildInventoryReport(products []models.Product, addOns *models.FlavorsAndToppings) (*excelize.File, error) {
	return writeReport([]reportGroup{
		{"Productos", products},
		{"Sabores", addOns.Flavors},
		{"Toppings", addOns.Toppings},
	})
}

// writeReport closes the workbook on any error and returns it open otherwise.
func writeReport(groups []reportGroup) (f *excelize.File, err error) {
	f = excelize.NewFile()
	defer func() {
		if err != nil {
			_ = f.Close()
			f = nil
		}
	}()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(models.ProductHeader))
	for c, h := range models.ProductHeader {
		header[c] = h
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}

	for i, g := range groups {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), g.sheet); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(g.sheet); err != nil {
			return nil, err
		}

		if err := f.SetSheetRow(g.sheet, "A1", &header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(g.sheet, "A1", last, bold); err != nil {
			return nil, err
		}

		for r, p := range g.items {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, err
			}
			row := p.Row()
			if err := f.SetSheetRow(g.sheet, cell, &row); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
