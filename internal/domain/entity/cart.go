package entity

// DefaultTaxRate fixed sales tax applied at checkout
const DefaultTaxRate = 0.08

// CartLine product snapshot plus quantity (>= 1)
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal unit price times quantity
func (l CartLine) LineTotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Totals derived cart amounts in the canonical unit
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// CartView savat ko'rinishi
type CartView struct {
	Lines  []CartLine `json:"lines"`
	Totals Totals     `json:"totals"`
	Empty  bool       `json:"empty"`
}

// AddResult outcome of an add-to-cart action
type AddResult struct {
	Line    CartLine `json:"line"`
	Updated bool     `json:"updated"`
}
