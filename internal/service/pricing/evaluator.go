package pricing

import (
	"strings"

	"CourseMarket/internal/app_errors"

	"github.com/shopspring/decimal"
)

// Catalog maps a promo code to the discount fraction it grants.
// Codes are stored upper-cased; matching is case-insensitive.
type Catalog map[string]decimal.Decimal

// DefaultCatalog returns the recognized promo codes. Currently a single
// Black Friday code giving 50% off.
func DefaultCatalog() Catalog {
	return Catalog{
		"BFSALE25": decimal.NewFromFloat(0.5),
	}
}

type Evaluator struct {
	catalog Catalog
}

func NewEvaluator(catalog Catalog) *Evaluator {
	return &Evaluator{catalog: catalog}
}

// Quote computes the authoritative price owed for a course.
//
// A zero base price is returned as-is, whatever the code. A positive base
// price requires a recognized code: ErrPromoRequired when the code is
// empty, ErrInvalidPromo when it is not in the catalog.
func (e *Evaluator) Quote(basePrice decimal.Decimal, promoCode string) (decimal.Decimal, error) {
	if basePrice.IsZero() {
		return decimal.Zero, nil
	}

	code := strings.ToUpper(strings.TrimSpace(promoCode))
	if code == "" {
		return decimal.Zero, app_errors.ErrPromoRequired
	}

	discount, ok := e.catalog[code]
	if !ok {
		return decimal.Zero, app_errors.ErrInvalidPromo
	}

	return basePrice.Sub(basePrice.Mul(discount)), nil
}
