package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Subscription struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	CourseID  uuid.UUID       `json:"course_id"`
	PricePaid decimal.Decimal `json:"price_paid"`
	CreatedAt time.Time       `json:"created_at"`
}

// CourseSubscription is the storage-level join of a subscription with its
// course row.
type CourseSubscription struct {
	Course       Course
	Subscription Subscription
}

// SubscribedCourse is a subscription joined with its course, as shown on
// the "my courses" page.
type SubscribedCourse struct {
	Course       CoursePreview   `json:"course"`
	PricePaid    decimal.Decimal `json:"price_paid"`
	SubscribedAt time.Time       `json:"subscribed_at"`
}
