package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/sheetstock/internal/inventory"
)

var (
	queryCategory string
	queryName     string
	queryLimit    int
)

var stockCmd = &cobra.Command{
	Use:   "stock <code>",
	Short: "Show the stock of a product by code",
	Args:  cobra.ExactArgs(1),
	RunE:  showStock,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search products by name keywords or code",
	Args:  cobra.MinimumNArgs(1),
	RunE:  searchProducts,
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products, optionally filtered by category and name",
	RunE:  listProducts,
}

func init() {
	rootCmd.AddCommand(stockCmd, searchCmd, productsCmd)

	productsCmd.Flags().StringVar(&queryCategory, "category", "", "Category filter (\"todas\" for all)")
	productsCmd.Flags().StringVar(&queryName, "name", "", "Product name filter")
	productsCmd.Flags().IntVar(&queryLimit, "limit", 0, "Maximum number of products to show")
}

func showStock(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	stock, err := a.inventory.GetStockByCode(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("📦 %s\n", stock.Name)
	fmt.Printf("   Stock: %d | Precio: %.2f\n", stock.Stock, stock.Price)
	return nil
}

func searchProducts(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.inventory.SearchByName(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if p := res.Product; p != nil {
		fmt.Printf("🍦 %s [%s] - %.2f (stock %d)\n", p.Name, p.Code, p.SellPrice, p.Stock)
		fmt.Printf("   Sabores: %d | Toppings: %d\n", len(p.Flavors), len(p.Toppings))
		return nil
	}

	fmt.Printf("🔍 %d coincidencias:\n", len(res.Matches))
	for i, p := range res.Matches {
		fmt.Printf("   %d. %s [%s] - %.2f\n", i+1, p.Name, p.Code, p.SellPrice)
	}
	return nil
}

func listProducts(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.inventory.QueryProducts(cmd.Context(), inventory.Query{
		Category: queryCategory,
		Name:     queryName,
		Limit:    queryLimit,
	})
	if err != nil {
		return err
	}

	if len(res.Items) == 0 {
		fmt.Println("📭 No products found matching criteria")
		return nil
	}
	fmt.Println(strings.Repeat("─", 60))
	for _, v := range res.Items {
		fmt.Printf("%-10s %-30s %10.2f  %s\n", v.Code, truncate(v.Name, 30), v.Price, v.Category)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}
