package entity

import "time"

// AdminAction admin harakatlari (audit log)
type AdminAction struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"user_email"`
	Action    string    `json:"action"` // "create_product", "update_stock", "delete_product", ...
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// CatalogInfo katalog statistikasi
type CatalogInfo struct {
	Products       int            `json:"products"`
	Brands         int            `json:"brands"`
	Categories     int            `json:"categories"`
	OutOfStock     int            `json:"out_of_stock"`
	PerCategory    map[string]int `json:"per_category"`
	InventoryValue float64        `json:"inventory_value"`
}
