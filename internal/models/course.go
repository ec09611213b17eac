package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Course struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	ImageObjectKey string          `json:"image_object_key"`
	CreatedAt      time.Time       `json:"created_at"`
}

// IsFree reports whether the course costs nothing. Free courses never
// require a promo code.
func (c *Course) IsFree() bool {
	return c.Price.IsZero()
}

type CoursePreview struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
}
