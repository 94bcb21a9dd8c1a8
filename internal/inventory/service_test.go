package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/sheetstock/internal/apperr"
	"github.com/matthieukhl/sheetstock/internal/models"
	"github.com/matthieukhl/sheetstock/internal/spreadsheet"
)

const (
	testDoc   = "productos-doc"
	testSheet = "Productos"
)

func sampleRows() [][]string {
	return [][]string{
		models.ProductHeader,
		{"ABC123", "Chocolate Sundae", "8500", "Postres", "2", "1", "12"},
		{"VS-02", "Vanilla Sundae", "8000", "Postres", "2", "1", "7"},
		{"CN-01", "Cono Sencillo", "3500", "Conos", "1", "0", "40"},
		{"MT-01", "Malteada de Fresa", "", "Bebidas", "", "", "abc"},
		{"SB-01", "Chocolate", "", "Sabores_Helado", "", "", ""},
		{"SB-02", "Maracuyá", "", " sabores_helado ", "", "", ""},
		{"TP-01", "Chispas", "", "Toppings", "", "", ""},
	}
}

func newTestService(t *testing.T) (*Service, *spreadsheet.MemorySource) {
	t.Helper()
	src := spreadsheet.NewMemorySource()
	src.Put(testDoc, testSheet, sampleRows())
	return NewService(src, testDoc, testSheet, zerolog.Nop()), src
}

func TestListProductsExcludesAddOns(t *testing.T) {
	svc, _ := newTestService(t)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 4)
	for _, p := range products {
		assert.NotContains(t, []string{"SB-01", "SB-02", "TP-01"}, p.Code)
	}
	assert.Equal(t, 0.0, products[3].SellPrice)
	assert.Equal(t, 0, products[3].Stock)
}

func TestListFlavorsAndToppings(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.ListFlavorsAndToppings(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Flavors, 2)
	require.Len(t, got.Toppings, 1)
	assert.Equal(t, "Maracuyá", got.Flavors[1].Name)
	assert.Equal(t, "Chispas", got.Toppings[0].Name)
}

func TestFetchFailureIsUpstream(t *testing.T) {
	svc, src := newTestService(t)
	src.Fail(errors.New("quota exceeded"))

	_, err := svc.ListProducts(context.Background())
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))

	_, err = svc.ListFlavorsAndToppings(context.Background())
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}

func TestEmptyWorksheetIsUpstream(t *testing.T) {
	src := spreadsheet.NewMemorySource()
	src.Put(testDoc, testSheet, nil)
	svc := NewService(src, testDoc, testSheet, zerolog.Nop())

	_, err := svc.QueryProducts(context.Background(), Query{})
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}

func codes(items []models.ProductView) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.Code
	}
	return out
}

func TestQueryProducts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"no filters", Query{}, []string{"ABC123", "VS-02", "CN-01", "MT-01"}},
		{"todas", Query{Category: "Todas"}, []string{"ABC123", "VS-02", "CN-01", "MT-01"}},
		{"all", Query{Category: "all"}, []string{"ABC123", "VS-02", "CN-01", "MT-01"}},
		{"category substring", Query{Category: "postre"}, []string{"ABC123", "VS-02"}},
		{"category matches name", Query{Category: "malteada"}, []string{"MT-01"}},
		{"category with accents", Query{Category: "BEBÍDAS"}, []string{"MT-01"}},
		{"name filter", Query{Name: "sundae"}, []string{"ABC123", "VS-02"}},
		{"both filters", Query{Category: "postres", Name: "vanilla"}, []string{"VS-02"}},
		{"nothing", Query{Name: "pizza"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.QueryProducts(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, codes(res.Items))
			assert.Nil(t, res.Debug)
		})
	}
}

func TestQueryProductsLimitIsPrefix(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	all, err := svc.QueryProducts(ctx, Query{Category: "todas"})
	require.NoError(t, err)

	limited, err := svc.QueryProducts(ctx, Query{Category: "todas", Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited.Items, 2)
	assert.Equal(t, all.Items[:2], limited.Items)

	big, err := svc.QueryProducts(ctx, Query{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, all.Items, big.Items)
}

func TestQueryProductsDebug(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.QueryProducts(context.Background(), Query{Category: " Postres ", Debug: true, Limit: 1})
	require.NoError(t, err)
	require.NotNil(t, res.Debug)

	d := res.Debug
	assert.Equal(t, "postres", d.Query.Category)
	assert.Equal(t, DebugCounts{Raw: 4, Normalized: 4, Filtered: 1}, d.Counts)
	assert.Len(t, d.SampleRaw, 4)
	assert.Len(t, d.Result, 1)
	assert.Equal(t, "Chocolate Sundae", d.SampleRaw[0].Get(models.FieldName))
}

func TestGetStockByCode(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	stock, err := svc.GetStockByCode(ctx, "abc 123")
	require.NoError(t, err)
	assert.Equal(t, &models.Stock{Name: "Chocolate Sundae", Stock: 12, Price: 8500}, stock)

	_, err = svc.GetStockByCode(ctx, "SB-01")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "add-ons are not stocked products")

	_, err = svc.GetStockByCode(ctx, "ZZZ")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetStockByCodeFirstMatchWins(t *testing.T) {
	svc, src := newTestService(t)
	rows := sampleRows()
	rows = append(rows, []string{"abc123", "Duplicado", "1", "Postres", "", "", "99"})
	src.Put(testDoc, testSheet, rows)

	stock, err := svc.GetStockByCode(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "Chocolate Sundae", stock.Name)
}

func TestSearchByNameAllKeywords(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.SearchByName(context.Background(), "sundae chocolate")
	require.NoError(t, err)
	require.NotNil(t, res.Product)
	assert.Nil(t, res.Matches)
	assert.Equal(t, "ABC123", res.Product.Code)
	assert.Len(t, res.Product.Flavors, 2)
	assert.Len(t, res.Product.Toppings, 1)
}

func TestSearchByNameMultipleMatches(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.SearchByName(context.Background(), "SUNDAE")
	require.NoError(t, err)
	assert.Nil(t, res.Product)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "Vanilla Sundae", res.Matches[1].Name)
}

func TestSearchByNameCode(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.SearchByName(context.Background(), "abc 123")
	require.NoError(t, err)
	require.NotNil(t, res.Product)
	assert.Equal(t, "Chocolate Sundae", res.Product.Name)

	res, err = svc.SearchByName(context.Background(), "cn-01")
	require.NoError(t, err)
	require.NotNil(t, res.Product)
	assert.Equal(t, "Cono Sencillo", res.Product.Name)
}

func TestSearchByNameErrors(t *testing.T) {
	svc, src := newTestService(t)
	ctx := context.Background()

	_, err := svc.SearchByName(ctx, "   ")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// a lone combining accent normalizes to nothing and must not match every product
	res, err := svc.SearchByName(ctx, "\u0301")
	assert.Nil(t, res)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.SearchByName(ctx, "pizza hawaiana")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	src.Fail(errors.New("unavailable"))
	_, err = svc.SearchByName(ctx, "sundae")
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}
