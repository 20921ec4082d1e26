package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SubcategoryOther groups products whose subcategory was never set. Filter
// matching and the category sidebar both use this bucket.
const SubcategoryOther = "Other"

// Product is a catalog entry. Optional merchandising facets are pointers so
// an absent value is distinguishable from an empty string.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category"`
	Subcategory *string          `json:"subcategory,omitempty"`
	AgeGroup    *string          `json:"age_group,omitempty"`
	Material    *string          `json:"material,omitempty"`
	UseCase     *string          `json:"use_case,omitempty"`
	ListPrice   decimal.Decimal  `json:"list_price"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Featured    bool             `json:"featured"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// EffectivePrice returns the price a customer actually pays: the sale price
// when one is set and strictly below the list price, otherwise the list
// price. A sale price at or above list is ignored.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.LessThan(p.ListPrice) {
		return *p.SalePrice
	}
	return p.ListPrice
}

// OnSale reports whether the effective price differs from the list price.
func (p *Product) OnSale() bool {
	return p.SalePrice != nil && p.SalePrice.LessThan(p.ListPrice)
}

// SubcategoryOrOther returns the product's subcategory, or SubcategoryOther
// when none is set or it is blank.
func (p *Product) SubcategoryOrOther() string {
	if p.Subcategory == nil || strings.TrimSpace(*p.Subcategory) == "" {
		return SubcategoryOther
	}
	return *p.Subcategory
}
