package entity

import (
	"strings"
	"time"
)

// LowStockThreshold stock below this count is reported as low
const LowStockThreshold = 10

// StockStatus ombordagi holat
type StockStatus string

const (
	StockIn  StockStatus = "in_stock"
	StockLow StockStatus = "low_stock"
	StockOut StockStatus = "out_of_stock"
)

// Product catalog item. Price is in the canonical (USD) unit.
type Product struct {
	ID               int       `json:"id" yaml:"id"`
	Name             string    `json:"name" yaml:"name"`
	Slug             string    `json:"slug" yaml:"slug"`
	SKU              string    `json:"sku" yaml:"sku"`
	Description      string    `json:"description" yaml:"description"`
	Price            float64   `json:"price" yaml:"price"`
	Stock            int       `json:"stock" yaml:"stock"`
	CategoryID       int       `json:"category_id" yaml:"category_id"`
	BrandID          int       `json:"brand_id" yaml:"brand_id"`
	ImageURL         string    `json:"image_url" yaml:"image_url"`
	CompatibleModels []string  `json:"compatible_models" yaml:"compatible_models"`
	IsFeatured       bool      `json:"is_featured" yaml:"is_featured"`
	CreatedAt        time.Time `json:"created_at" yaml:"created_at"`
}

// InStock reports whether the product can be added to a cart
func (p Product) InStock() bool {
	return p.Stock > 0
}

// StockStatus returns the display stock state
func (p Product) StockStatus() StockStatus {
	switch {
	case p.Stock <= 0:
		return StockOut
	case p.Stock < LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// Clone returns a copy that shares no slices with p
func (p Product) Clone() Product {
	if p.CompatibleModels != nil {
		p.CompatibleModels = append([]string(nil), p.CompatibleModels...)
	}
	return p
}

// Brand avtomobil brendi
type Brand struct {
	ID      int    `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Slug    string `json:"slug" yaml:"slug"`
	Country string `json:"country,omitempty" yaml:"country"`
}

// Category mahsulot kategoriyasi
type Category struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description,omitempty" yaml:"description"`
	Icon        string `json:"icon,omitempty" yaml:"icon"`
}

// ProductDetail product with its brand and category resolved
type ProductDetail struct {
	Product  Product     `json:"product"`
	Brand    *Brand      `json:"brand,omitempty"`
	Category *Category   `json:"category,omitempty"`
	Status   StockStatus `json:"stock_status"`
}

// ProductDraft input for admin product creation and spreadsheet import.
// CategoryName/BrandName are used when the ids are zero.
type ProductDraft struct {
	Name             string   `json:"name"`
	SKU              string   `json:"sku"`
	Description      string   `json:"description"`
	Price            float64  `json:"price"`
	Stock            int      `json:"stock"`
	CategoryID       int      `json:"category_id"`
	BrandID          int      `json:"brand_id"`
	CategoryName     string   `json:"category_name,omitempty"`
	BrandName        string   `json:"brand_name,omitempty"`
	ImageURL         string   `json:"image_url"`
	CompatibleModels []string `json:"compatible_models"`
	IsFeatured       bool     `json:"is_featured"`
}

// Catalog seed dataset va joriy holat
type Catalog struct {
	Products   []Product  `json:"products" yaml:"products"`
	Brands     []Brand    `json:"brands" yaml:"brands"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// ProductSlug derives a product slug: lowercase, each space replaced by a dash
func ProductSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Slugify derives a brand/category slug: lowercase, whitespace runs collapsed to a dash
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
