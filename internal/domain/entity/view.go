package entity

// View rendered state of the current page. Blank means the page renders nothing.
type View struct {
	Page          Page           `json:"page"`
	Params        NavParams      `json:"params"`
	Currency      CurrencyCode   `json:"currency"`
	User          *User          `json:"user,omitempty"`
	CartCount     int            `json:"cart_count"`
	Blank         bool           `json:"blank,omitempty"`
	NotFound      bool           `json:"not_found,omitempty"`
	LoginRequired bool           `json:"login_required,omitempty"`
	Redirect      Page           `json:"redirect,omitempty"`
	Empty         bool           `json:"empty,omitempty"`
	Filter        *ProductFilter `json:"filter,omitempty"`
	Products      []Product      `json:"products,omitempty"`
	Featured      []Product      `json:"featured,omitempty"`
	Brands        []Brand        `json:"brands,omitempty"`
	Categories    []Category     `json:"categories,omitempty"`
	Product       *ProductDetail `json:"product,omitempty"`
	Cart          *CartView      `json:"cart,omitempty"`
	Order         *Order         `json:"order,omitempty"`
}
