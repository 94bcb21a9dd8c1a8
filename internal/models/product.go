package models

import (
	"strconv"
	"strings"
)

// Worksheet header names of the products sheet.
const (
	FieldCode         = "CodigoProducto"
	FieldName         = "NombreProducto"
	FieldSellPrice    = "Precio_Venta"
	FieldCategory     = "Categoria"
	FieldFlavorCount  = "Numero_de_Sabores"
	FieldToppingCount = "Numero_de_Toppings"
	FieldStock        = "Stock_Actual"
)

// ProductHeader is the column order of the products worksheet.
var ProductHeader = []string{
	FieldCode, FieldName, FieldSellPrice, FieldCategory,
	FieldFlavorCount, FieldToppingCount, FieldStock,
}

// Normalized category values that mark a row as a flavor or a topping.
const (
	CategoryFlavors  = "sabores_helado"
	CategoryToppings = "toppings"
)

// Product is one row of the products worksheet.
type Product struct {
	Code         string  `json:"CodigoProducto"`
	Name         string  `json:"NombreProducto"`
	SellPrice    float64 `json:"Precio_Venta"`
	Category     string  `json:"Categoria"`
	FlavorCount  int     `json:"Numero_de_Sabores"`
	ToppingCount int     `json:"Numero_de_Toppings"`
	Stock        int     `json:"Stock_Actual"`
}

// ProductFromRecord maps a worksheet record onto a Product. Numeric fields
// default to 0 when empty or unparsable.
func ProductFromRecord(rec map[string]string) Product {
	return Product{
		Code:         strings.TrimSpace(rec[FieldCode]),
		Name:         strings.TrimSpace(rec[FieldName]),
		SellPrice:    ParseAmount(rec[FieldSellPrice]),
		Category:     strings.TrimSpace(rec[FieldCategory]),
		FlavorCount:  ParseCount(rec[FieldFlavorCount]),
		ToppingCount: ParseCount(rec[FieldToppingCount]),
		Stock:        ParseCount(rec[FieldStock]),
	}
}

// Row returns the product as worksheet values in ProductHeader order.
func (p Product) Row() []any {
	return []any{p.Code, p.Name, p.SellPrice, p.Category, p.FlavorCount, p.ToppingCount, p.Stock}
}

// ProductView is the display shape returned by product queries.
type ProductView struct {
	Code         string  `json:"codigo"`
	Name         string  `json:"nombre"`
	Price        float64 `json:"precio"`
	Category     string  `json:"categoria"`
	FlavorCount  int     `json:"numSabores"`
	ToppingCount int     `json:"numToppings"`
}

func (p Product) View() ProductView {
	return ProductView{
		Code:         p.Code,
		Name:         p.Name,
		Price:        p.SellPrice,
		Category:     p.Category,
		FlavorCount:  p.FlavorCount,
		ToppingCount: p.ToppingCount,
	}
}

// Stock is the answer of a stock lookup.
type Stock struct {
	Name  string  `json:"nombre"`
	Stock int     `json:"stock"`
	Price float64 `json:"precio"`
}

// FlavorsAndToppings groups the add-on rows of the products worksheet.
type FlavorsAndToppings struct {
	Flavors  []Product `json:"sabores"`
	Toppings []Product `json:"toppings"`
}

// ProductDetail is a single search hit with the add-ons it can be served with.
type ProductDetail struct {
	Product
	Flavors  []Product `json:"sabores"`
	Toppings []Product `json:"toppings"`
}

var amountCleaner = strings.NewReplacer("$", "", " ", "", ",", "")

// ParseAmount parses a price cell such as "3500", "$3,500" or "12.5".
func ParseAmount(s string) float64 {
	s = amountCleaner.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseCount parses an integer cell. Values like "4.0" are truncated.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
