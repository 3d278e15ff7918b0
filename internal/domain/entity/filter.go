package entity

import "strings"

// ProductFilter catalog filter criteria. Zero ids and empty search are ignored.
type ProductFilter struct {
	Search     string `json:"search,omitempty" form:"search"`
	CategoryID int    `json:"category_id,omitempty" form:"category_id"`
	BrandID    int    `json:"brand_id,omitempty" form:"brand_id"`
}

// IsEmpty reports whether no criterion is set
func (f ProductFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Search) == "" && f.CategoryID == 0 && f.BrandID == 0
}

// Matches reports whether p satisfies every non-empty criterion
func (f ProductFilter) Matches(p Product) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !matchesSearch(p, q) {
			return false
		}
	}
	if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
		return false
	}
	if f.BrandID != 0 && p.BrandID != f.BrandID {
		return false
	}
	return true
}

// q must already be lowercased
func matchesSearch(p Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.SKU), q) {
		return true
	}
	for _, m := range p.CompatibleModels {
		if strings.Contains(strings.ToLower(m), q) {
			return true
		}
	}
	return false
}
