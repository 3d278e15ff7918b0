package http

import (
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
)

type productResponse struct {
	entity.Product
	DisplayPrice string             `json:"display_price"`
	StockStatus  entity.StockStatus `json:"stock_status"`
}

type productDetailResponse struct {
	Product  productResponse  `json:"product"`
	Brand    *entity.Brand    `json:"brand,omitempty"`
	Category *entity.Category `json:"category,omitempty"`
}

type totalsResponse struct {
	entity.Totals
	DisplaySubtotal string `json:"display_subtotal"`
	DisplayTax      string `json:"display_tax"`
	DisplayTotal    string `json:"display_total"`
}

type cartLineResponse struct {
	Index        int             `json:"index"`
	Product      productResponse `json:"product"`
	Quantity     int             `json:"quantity"`
	DisplayTotal string          `json:"display_total"`
}

type cartResponse struct {
	Lines  []cartLineResponse `json:"lines"`
	Totals totalsResponse     `json:"totals"`
	Empty  bool               `json:"empty"`
}

type orderResponse struct {
	*entity.Order
	DisplayTotal string `json:"display_total"`
}

type viewResponse struct {
	entity.View
	Featured []productResponse     `json:"featured,omitempty"`
	Products []productResponse     `json:"products,omitempty"`
	Product  *productDetailResponse `json:"product,omitempty"`
	Cart     *cartResponse          `json:"cart,omitempty"`
	Order    *orderResponse         `json:"order,omitempty"`
}

// presenter formats canonical amounts in the session's display currency
type presenter struct {
	prices   PriceFormatter
	currency entity.CurrencyCode
}

func (p presenter) money(amount float64) string {
	return p.prices.MustFormat(amount, p.currency)
}

func (p presenter) product(prod entity.Product) productResponse {
	return productResponse{
		Product:      prod,
		DisplayPrice: p.money(prod.Price),
		StockStatus:  prod.StockStatus(),
	}
}

func (p presenter) products(ps []entity.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, prod := range ps {
		out = append(out, p.product(prod))
	}
	return out
}

func (p presenter) detail(d *entity.ProductDetail) *productDetailResponse {
	if d == nil {
		return nil
	}
	return &productDetailResponse{Product: p.product(d.Product), Brand: d.Brand, Category: d.Category}
}

func (p presenter) totals(t entity.Totals) totalsResponse {
	return totalsResponse{
		Totals:          t,
		DisplaySubtotal: p.money(t.Subtotal),
		DisplayTax:      p.money(t.Tax),
		DisplayTotal:    p.money(t.Total),
	}
}

func (p presenter) cart(v entity.CartView) cartResponse {
	lines := make([]cartLineResponse, 0, len(v.Lines))
	for i, l := range v.Lines {
		lines = append(lines, cartLineResponse{
			Index:        i,
			Product:      p.product(l.Product),
			Quantity:     l.Quantity,
			DisplayTotal: p.money(l.LineTotal()),
		})
	}
	return cartResponse{Lines: lines, Totals: p.totals(v.Totals), Empty: v.Empty}
}

func (p presenter) order(o *entity.Order) *orderResponse {
	if o == nil {
		return nil
	}
	return &orderResponse{Order: o, DisplayTotal: p.money(o.Total)}
}

func (p presenter) view(v entity.View) viewResponse {
	resp := viewResponse{View: v}
	if v.Featured != nil {
		resp.Featured = p.products(v.Featured)
	}
	if v.Products != nil {
		resp.Products = p.products(v.Products)
	}
	resp.Product = p.detail(v.Product)
	if v.Cart != nil {
		c := p.cart(*v.Cart)
		resp.Cart = &c
	}
	resp.Order = p.order(v.Order)
	return resp
}
