package entity

import "time"

// Page storefront navigation page
type Page string

const (
	PageHome         Page = "home"
	PageCatalog      Page = "catalog"
	PageProduct      Page = "product"
	PageAbout        Page = "about"
	PageCart         Page = "cart"
	PageContact      Page = "contact"
	PageLogin        Page = "login"
	PageRegister     Page = "register"
	PageDashboard    Page = "dashboard"
	PageCheckout     Page = "checkout"
	PageOrderSuccess Page = "order-success"
)

var pages = map[Page]struct{}{
	PageHome: {}, PageCatalog: {}, PageProduct: {}, PageAbout: {}, PageCart: {}, PageContact: {},
	PageLogin: {}, PageRegister: {}, PageDashboard: {}, PageCheckout: {}, PageOrderSuccess: {},
}

// Valid reports whether p is a known page
func (p Page) Valid() bool {
	_, ok := pages[p]
	return ok
}

// NavParams page parameters
type NavParams struct {
	ID         int    `json:"id,omitempty"`
	CategoryID int    `json:"category_id,omitempty"`
	BrandID    int    `json:"brand_id,omitempty"`
	Search     string `json:"search,omitempty"`
}

// Filter catalog criteria carried by the params
func (p NavParams) Filter() ProductFilter {
	return ProductFilter{Search: p.Search, CategoryID: p.CategoryID, BrandID: p.BrandID}
}

// Session one shopper's state: user, cart, currency and current page
type Session struct {
	ID        string       `json:"id"`
	User      *User        `json:"user,omitempty"`
	Cart      []CartLine   `json:"cart"`
	Currency  CurrencyCode `json:"currency"`
	Page      Page         `json:"page"`
	Params    NavParams    `json:"params"`
	LastOrder *Order       `json:"last_order,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Clone deep-copies the mutable parts of the session
func (s Session) Clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	if s.Cart != nil {
		lines := make([]CartLine, len(s.Cart))
		for i, l := range s.Cart {
			lines[i] = CartLine{Product: l.Product.Clone(), Quantity: l.Quantity}
		}
		s.Cart = lines
	}
	if s.LastOrder != nil {
		o := *s.LastOrder
		o.Items = append([]OrderItem(nil), o.Items...)
		s.LastOrder = &o
	}
	return s
}
