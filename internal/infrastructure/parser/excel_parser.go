package parser

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
	"github.com/yourusername/autoparts-storefront/internal/logger"
	"go.uber.org/zap"
)

const exportSheet = "Products"

// exportHeader is also recognised by mapColumns, so exported files import cleanly
var exportHeader = []string{
	"ID", "Name", "SKU", "Price (USD)", "Stock", "Category", "Brand",
	"Compatible Models", "Description", "Image URL", "Featured",
}

type excelParser struct {
	log *zap.Logger
}

// NewExcelParser yangi Excel parser yaratish
func NewExcelParser(log *zap.Logger) repository.CatalogSpreadsheet {
	return &excelParser{log: logger.OrNop(log)}
}

// ParseProductsFromBytes byte array dan parse qilish
func (e *excelParser) ParseProductsFromBytes(ctx context.Context, data []byte) ([]entity.ProductDraft, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// parseExcelFile birinchi sheetni parse qilish
func (e *excelParser) parseExcelFile(f *excelize.File) ([]entity.ProductDraft, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, entity.ErrEmptyImport
	}

	// Agar birinchi qatorning 2-ustuni raqam bo'lsa, header yo'q
	hasHeader := true
	startRow := 1
	if len(rows[0]) > 1 {
		if _, err := parsePrice(rows[0][1]); err == nil {
			hasHeader = false
			startRow = 0
		}
	}

	var columns map[string]int
	if hasHeader {
		columns = mapColumns(rows[0])
	} else {
		// name | price | category
		columns = map[string]int{"name": 0, "price": 1}
		if len(rows[0]) > 2 {
			columns["category"] = 2
		}
	}
	if _, ok := columns["price"]; !ok {
		if guessed := detectPriceColumn(rows, startRow); guessed >= 0 {
			columns["price"] = guessed
		} else {
			columns["price"] = 1
		}
	}
	e.log.Debug("excel columns", zap.Bool("header", hasHeader), zap.Any("columns", columns))

	cell := func(row []string, key string) string {
		idx, ok := columns[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var drafts []entity.ProductDraft
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		name := cell(row, "name")
		if len(name) < 3 {
			continue
		}

		price, err := parsePrice(cell(row, "price"))
		if err != nil {
			e.log.Warn("skipping row with invalid price", zap.Int("row", i+1), zap.String("name", name))
			continue
		}

		draft := entity.ProductDraft{
			Name:         name,
			SKU:          cell(row, "sku"),
			Description:  cell(row, "description"),
			Price:        price,
			CategoryName: cell(row, "category"),
			BrandName:    cell(row, "brand"),
			ImageURL:     cell(row, "image"),
			IsFeatured:   parseBool(cell(row, "featured")),
		}
		if draft.CategoryName == "" {
			draft.CategoryName = detectCategory(name)
		}
		if stock := cell(row, "stock"); stock != "" {
			if n, err := parsePrice(stock); err == nil && n >= 0 {
				draft.Stock = int(n)
			}
		}
		if models := cell(row, "models"); models != "" {
			draft.CompatibleModels = splitModels(models)
		}

		drafts = append(drafts, draft)
	}

	e.log.Info("excel parsed", zap.Int("rows", len(rows)), zap.Int("products", len(drafts)))
	if len(drafts) == 0 {
		return nil, fmt.Errorf("parsed %d rows, all invalid: %w", len(rows)-startRow, entity.ErrEmptyImport)
	}
	return drafts, nil
}

// ExportProducts katalogni xlsx formatga yozish
func (e *excelParser) ExportProducts(ctx context.Context, catalog entity.Catalog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	brands := make(map[int]string, len(catalog.Brands))
	for _, b := range catalog.Brands {
		brands[b.ID] = b.Name
	}
	categories := make(map[int]string, len(catalog.Categories))
	for _, c := range catalog.Categories {
		categories[c.ID] = c.Name
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, p := range catalog.Products {
		featured := "no"
		if p.IsFeatured {
			featured = "yes"
		}
		row := []interface{}{
			p.ID, p.Name, p.SKU, p.Price, p.Stock, categories[p.CategoryID], brands[p.BrandID],
			strings.Join(p.CompatibleModels, ", "), p.Description, p.ImageURL, featured,
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, axis, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "B", "B", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "H", "I", 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// detectPriceColumn narx ustunini topish (agar headerda topilmasa)
func detectPriceColumn(rows [][]string, startRow int) int {
	limitRows := min(startRow+15, len(rows))

	maxCols := 0
	for i := startRow; i < limitRows; i++ {
		maxCols = max(maxCols, len(rows[i]))
	}

	bestCol, bestCount := -1, 0
	for col := 1; col < maxCols; col++ {
		count := 0
		for i := startRow; i < limitRows; i++ {
			if col < len(rows[i]) {
				if _, err := parsePrice(rows[i][col]); err == nil {
					count++
				}
			}
		}
		if count > bestCount {
			bestCol, bestCount = col, count
		}
	}

	// Kamida 2 ta qator narx sifatida o'qilsa
	if bestCount >= 2 {
		return bestCol
	}
	return -1
}

// mapColumns header qatoridan column mapping yaratish. Order matters: the
// first keyword group that matches wins.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)

	set := func(key string, i int) {
		if _, taken := columns[key]; !taken {
			columns[key] = i
		}
	}

	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		switch {
		case name == "":
		case name == "id" || name == "#":
		case contains(name, "sku", "part number", "part no", "code", "artikul"):
			set("sku", i)
		case contains(name, "compatible", "model", "fits", "vehicle"):
			set("models", i)
		case contains(name, "image", "photo", "picture", "url"):
			set("image", i)
		case contains(name, "featured"):
			set("featured", i)
		case contains(name, "category", "kategoriya", "type"):
			set("category", i)
		case contains(name, "brand", "make", "manufacturer"):
			set("brand", i)
		case contains(name, "price", "narx", "cost", "usd", "$"):
			set("price", i)
		case contains(name, "stock", "qty", "quantity", "soni"):
			set("stock", i)
		case contains(name, "description", "tavsif", "details", "info"):
			set("description", i)
		case contains(name, "name", "nom", "product", "part", "mahsulot"):
			set("name", i)
		}
	}

	if _, ok := columns["name"]; !ok && len(header) > 0 {
		columns["name"] = 0
	}
	return columns
}

// contains tekshirish uchun helper
func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}

// prices in a spreadsheet are canonical USD; other currency markers fail to parse
var priceNoise = strings.NewReplacer(",", "", " ", "", "$", "", "usd", "")

// parsePrice narxni parse qilish
func parsePrice(raw string) (float64, error) {
	s := priceNoise.Replace(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}

	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price format: %q", raw)
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price: %q", raw)
	}
	return price, nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1", "ha", "x":
		return true
	}
	return false
}

// splitModels "Camry, Corolla; RAV4" -> [Camry Corolla RAV4]
func splitModels(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' || r == '|' })
	models := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			models = append(models, p)
		}
	}
	return models
}

// detectCategory mahsulot nomidan kategoriyani aniqlash.
// Names match the seed categories so imports join them instead of creating new ones.
func detectCategory(name string) string {
	n := strings.ToLower(name)

	switch {
	case contains(n, "oil", "coolant", "fluid", "antifreeze", "grease"):
		return "Oils & Fluids"
	case contains(n, "brake", "pad", "rotor", "caliper", "shock", "strut", "suspension", "spring"):
		return "Brakes & Suspension"
	case contains(n, "bulb", "led", "headlight", "battery", "alternator", "starter", "fuse", "wire", "sensor"):
		return "Electrical & Lighting"
	case contains(n, "exhaust", "muffler", "bumper", "mirror", "door", "hood", "panel"):
		return "Body & Exhaust"
	case contains(n, "filter", "spark", "plug", "belt", "piston", "gasket", "pump", "engine", "timing"):
		return "Engine Components"
	}
	return ""
}
