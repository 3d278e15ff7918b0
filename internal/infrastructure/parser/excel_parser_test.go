package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/infrastructure/storage"
)

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, axis, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseProductsWithHeader(t *testing.T) {
	data := workbook(t, [][]interface{}{
		{"Part Name", "SKU", "Price", "Qty", "Brand", "Fits", "Featured"},
		{"Ceramic Brake Pads", "BP-01", "$45.99", 12, "Toyota", "Camry; Corolla", "yes"},
		{"", "", "", "", "", "", ""},
		{"Cabin Filter", "FLT-02", "1,200.50", 3, "Honda", "", ""},
		{"Bad Price Row", "X-1", "GH₵40", 1, "", "", ""},
		{"ab", "short", "10", 1, "", "", ""},
	})

	drafts, err := NewExcelParser(nil).ParseProductsFromBytes(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	first := drafts[0]
	assert.Equal(t, "Ceramic Brake Pads", first.Name)
	assert.Equal(t, "BP-01", first.SKU)
	assert.Equal(t, 45.99, first.Price)
	assert.Equal(t, 12, first.Stock)
	assert.Equal(t, "Toyota", first.BrandName)
	assert.Equal(t, []string{"Camry", "Corolla"}, first.CompatibleModels)
	assert.True(t, first.IsFeatured)
	assert.Equal(t, "Brakes & Suspension", first.CategoryName, "category guessed from the name")

	second := drafts[1]
	assert.Equal(t, 1200.50, second.Price)
	assert.Equal(t, "Engine Components", second.CategoryName)
	assert.Empty(t, second.CompatibleModels)
	assert.False(t, second.IsFeatured)
}

func TestParseProductsWithoutHeader(t *testing.T) {
	data := workbook(t, [][]interface{}{
		{"Spark Plug Iridium", 12.99, "Ignition"},
		{"Motor Oil 5W-30", 32.5},
	})

	drafts, err := NewExcelParser(nil).ParseProductsFromBytes(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "Ignition", drafts[0].CategoryName)
	assert.Equal(t, "Oils & Fluids", drafts[1].CategoryName)
}

func TestParseProductsEmpty(t *testing.T) {
	p := NewExcelParser(nil)

	_, err := p.ParseProductsFromBytes(context.Background(), workbook(t, [][]interface{}{
		{"Name", "Price"},
		{"Nothing priced", "n/a"},
	}))
	assert.ErrorIs(t, err, entity.ErrEmptyImport)

	_, err = p.ParseProductsFromBytes(context.Background(), []byte("not a workbook"))
	assert.Error(t, err)
}

func TestExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewExcelParser(nil)
	catalog := storage.DefaultCatalog()

	data, err := p.ExportProducts(ctx, catalog)
	require.NoError(t, err)

	drafts, err := p.ParseProductsFromBytes(ctx, data)
	require.NoError(t, err)
	require.Len(t, drafts, len(catalog.Products))

	got := drafts[0]
	want := catalog.Products[0]
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.SKU, got.SKU)
	assert.Equal(t, want.Price, got.Price)
	assert.Equal(t, want.Stock, got.Stock)
	assert.Equal(t, "Brakes & Suspension", got.CategoryName)
	assert.Equal(t, "Toyota", got.BrandName)
	assert.Equal(t, want.CompatibleModels, got.CompatibleModels)
	assert.Equal(t, want.ImageURL, got.ImageURL)
	assert.True(t, got.IsFeatured)
}

func TestParsePrice(t *testing.T) {
	for raw, want := range map[string]float64{"12": 12, "$1,250.75": 1250.75, " 9.5 USD ": 9.5} {
		got, err := parsePrice(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
	for _, raw := range []string{"", "abc", "-3", "GH₵10"} {
		_, err := parsePrice(raw)
		assert.Error(t, err, raw)
	}
}
