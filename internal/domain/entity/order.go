package entity

import (
	"strings"
	"time"
)

// OrderStatus buyurtma holati
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

// Order is built at checkout and handed back to the caller; it is not stored.
type Order struct {
	ID              string      `json:"id"`
	UserID          int         `json:"user_id"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	Tax             float64     `json:"tax"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem buyurtma qatori
type OrderItem struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// ShippingAddress checkout form. Line wins over the split fields when set.
type ShippingAddress struct {
	Line   string `json:"address"`
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

// String single-line address, "street, city, zip" with blank parts dropped
func (a ShippingAddress) String() string {
	if line := strings.TrimSpace(a.Line); line != "" {
		return line
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.City, a.Zip} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
