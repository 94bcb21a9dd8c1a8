// Package inventory answers product, stock and add-on queries from the
// products worksheet.
package inventory

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/matthieukhl/sheetstock/internal/apperr"
	"github.com/matthieukhl/sheetstock/internal/models"
	"github.com/matthieukhl/sheetstock/internal/spreadsheet"
	"github.com/matthieukhl/sheetstock/internal/textnorm"
)

// debugSampleSize bounds the per-stage samples of a debug query.
const debugSampleSize = 5

// Category filter values that disable category filtering.
var allCategories = map[string]bool{"todas": true, "all": true}

type Service struct {
	source     spreadsheet.Source
	documentID string
	worksheet  string
	log        zerolog.Logger
}

func NewService(source spreadsheet.Source, documentID, worksheet string, log zerolog.Logger) *Service {
	return &Service{
		source:     source,
		documentID: documentID,
		worksheet:  worksheet,
		log:        log.With().Str("component", "inventory").Logger(),
	}
}

// fetch reads every row of the products worksheet. Any failure, including an
// empty worksheet, is reported as an upstream error.
func (s *Service) fetch(ctx context.Context) ([]spreadsheet.Record, error) {
	records, err := s.source.FetchRecords(ctx, s.documentID, s.worksheet)
	if err != nil {
		s.log.Error().Err(err).
			Str("document", s.documentID).
			Str("worksheet", s.worksheet).
			Msg("failed to fetch products")
		return nil, apperr.Upstream("No se pudieron obtener los datos del inventario.", err)
	}
	return records, nil
}

func isAddOn(category string) bool {
	c := textnorm.Normalize(category)
	return c == models.CategoryFlavors || c == models.CategoryToppings
}

func (s *Service) products(ctx context.Context) ([]spreadsheet.Record, []models.Product, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return nil, nil, err
	}
	raw := make([]spreadsheet.Record, 0, len(records))
	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		if isAddOn(rec.Get(models.FieldCategory)) {
			continue
		}
		raw = append(raw, rec)
		products = append(products, models.ProductFromRecord(rec))
	}
	return raw, products, nil
}

// ListProducts returns the sellable products, excluding flavor and topping rows.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	_, products, err := s.products(ctx)
	return products, err
}

// ListFlavorsAndToppings partitions the add-on rows by category.
func (s *Service) ListFlavorsAndToppings(ctx context.Context) (*models.FlavorsAndToppings, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	out := &models.FlavorsAndToppings{
		Flavors:  []models.Product{},
		Toppings: []models.Product{},
	}
	for _, rec := range records {
		switch textnorm.Normalize(rec.Get(models.FieldCategory)) {
		case models.CategoryFlavors:
			out.Flavors = append(out.Flavors, models.ProductFromRecord(rec))
		case models.CategoryToppings:
			out.Toppings = append(out.Toppings, models.ProductFromRecord(rec))
		}
	}
	return out, nil
}

// Query filters products by category and name.
type Query struct {
	Category string
	Name     string
	Limit    int
	Debug    bool
}

// QueryResult holds the matching products and, for debug queries, the
// pipeline report.
type QueryResult struct {
	Items []models.ProductView
	Debug *DebugReport
}

type DebugReport struct {
	Query            DebugQuery           `json:"query"`
	Counts           DebugCounts          `json:"counts"`
	SampleRaw        []spreadsheet.Record `json:"sample_raw"`
	SampleNormalized []models.ProductView `json:"sample_normalized"`
	Result           []models.ProductView `json:"result"`
}

type DebugQuery struct {
	Category string `json:"categoria"`
	Name     string `json:"producto"`
	Limit    int    `json:"limit"`
}

type DebugCounts struct {
	Raw        int `json:"raw"`
	Normalized int `json:"normalized"`
	Filtered   int `json:"filtered"`
}

// matches reports whether a product view passes both filters. Filters must
// already be normalized.
func matches(v models.ProductView, category, name string) bool {
	normName := textnorm.Normalize(v.Name)

	catOK := true
	if category != "" && !allCategories[category] {
		catOK = strings.Contains(textnorm.Normalize(v.Category), category) ||
			strings.Contains(normName, category)
	}

	nameOK := true
	if name != "" {
		nameOK = strings.Contains(normName, name)
	}
	return catOK && nameOK
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// QueryProducts filters the product list. Results keep worksheet order and
// are truncated to q.Limit when positive.
func (s *Service) QueryProducts(ctx context.Context, q Query) (*QueryResult, error) {
	raw, products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}

	category := textnorm.Normalize(q.Category)
	name := textnorm.Normalize(q.Name)

	normalized := make([]models.ProductView, len(products))
	for i, p := range products {
		normalized[i] = p.View()
	}

	out := []models.ProductView{}
	for _, v := range normalized {
		if matches(v, category, name) {
			out = append(out, v)
		}
	}
	if q.Limit > 0 {
		out = head(out, q.Limit)
	}

	res := &QueryResult{Items: out}
	if q.Debug {
		res.Debug = &DebugReport{
			Query:            DebugQuery{Category: category, Name: name, Limit: q.Limit},
			Counts:           DebugCounts{Raw: len(raw), Normalized: len(normalized), Filtered: len(out)},
			SampleRaw:        head(raw, debugSampleSize),
			SampleNormalized: head(normalized, debugSampleSize),
			Result:           head(out, debugSampleSize),
		}
	}
	return res, nil
}

// GetStockByCode finds the first product whose code equals code once both are
// folded with textnorm.Compact.
func (s *Service) GetStockByCode(ctx context.Context, code string) (*models.Stock, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	want := textnorm.Compact(code)
	for _, p := range products {
		if textnorm.Compact(p.Code) == want {
			return &models.Stock{Name: p.Name, Stock: p.Stock, Price: p.SellPrice}, nil
		}
	}
	return nil, apperr.NotFound("Producto no encontrado")
}

// SearchResult is either a single product with its add-ons or a list of matches.
type SearchResult struct {
	Product *models.ProductDetail
	Matches []models.Product
}

// SearchByName matches products whose normalized name contains every keyword
// of query, or whose code contains the whole query.
func (s *Service) SearchByName(ctx context.Context, query string) (*SearchResult, error) {
	if textnorm.Normalize(query) == "" {
		return nil, apperr.Validation(`Falta el parámetro de búsqueda "q"`)
	}

	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	tokens := textnorm.Tokens(query)
	compact := textnorm.Compact(query)

	var matched []models.Product
	for _, p := range products {
		if textnorm.ContainsAll(textnorm.Normalize(p.Name), tokens) ||
			strings.Contains(textnorm.Compact(p.Code), compact) {
			matched = append(matched, p)
		}
	}

	switch len(matched) {
	case 0:
		return nil, apperr.NotFound("Producto no encontrado.")
	case 1:
		addOns, err := s.ListFlavorsAndToppings(ctx)
		if err != nil {
			return nil, err
		}
		return &SearchResult{Product: &models.ProductDetail{
			Product:  matched[0],
			Flavors:  addOns.Flavors,
			Toppings: addOns.Toppings,
		}}, nil
	default:
		return &SearchResult{Matches: matched}, nil
	}
}
