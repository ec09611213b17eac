package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PromoPreview is the display-only result shown before the authoritative
// subscribe call. The server recomputes the price of record; a preview is
// never trusted as the price paid.
type PromoPreview struct {
	Applied      bool            `json:"applied"`
	DisplayPrice decimal.Decimal `json:"display_price"`
}

// Preview mirrors the quote rule for the course page. It deliberately does
// not share code with Evaluator.Quote so the two stay independently
// testable. Non-matching input keeps the original price and lets the user
// retry with another code.
func Preview(catalog Catalog, coursePrice decimal.Decimal, input string) PromoPreview {
	preview := PromoPreview{DisplayPrice: coursePrice}
	if coursePrice.IsZero() {
		return preview
	}

	for code, discount := range catalog {
		if strings.EqualFold(strings.TrimSpace(input), code) {
			preview.Applied = true
			preview.DisplayPrice = coursePrice.Sub(coursePrice.Mul(discount))
			return preview
		}
	}
	return preview
}
