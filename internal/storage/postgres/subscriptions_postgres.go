package postgres

import (
	"context"
	"fmt"
	"time"

	"CourseMarket/internal/app_errors"
	"CourseMarket/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type SubscriptionPostgres struct {
	db *pgxpool.Pool
}

func NewSubscriptionPostgres(db *pgxpool.Pool) *SubscriptionPostgres {
	return &SubscriptionPostgres{db: db}
}

// Insert records one subscription row. The unique index on
// (user_id, course_id) is the authority on duplicates: a concurrent insert
// that slips past the service-level existence check surfaces here as
// ErrAlreadySubscribed.
func (r *SubscriptionPostgres) Insert(ctx context.Context, userID, courseID uuid.UUID, pricePaid decimal.Decimal) (*models.Subscription, error) {
	now := time.Now().UTC()
	const query = `
        INSERT INTO subscriptions (id, user_id, course_id, price_paid, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	sub := &models.Subscription{
		UserID:    userID,
		CourseID:  courseID,
		PricePaid: pricePaid,
	}
	err := r.db.QueryRow(ctx, query, uuid.New(), userID, courseID, pricePaid, now).
		Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == uniqueViolationCode {
			return nil, app_errors.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to insert subscription: %w", err)
	}
	return sub, nil
}

func (r *SubscriptionPostgres) Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM subscriptions WHERE user_id = $1 AND course_id = $2
        )
    `
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return exists, nil
}

func (r *SubscriptionPostgres) SubscribedCourses(ctx context.Context, userID uuid.UUID) ([]models.CourseSubscription, error) {
	const query = `
        SELECT c.id, c.title, c.description, c.price, c.image_object_key, c.created_at,
               s.id, s.user_id, s.course_id, s.price_paid, s.created_at
        FROM courses c
        INNER JOIN subscriptions s ON s.course_id = c.id
        WHERE s.user_id = $1
        ORDER BY s.created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribed courses: %w", err)
	}
	defer rows.Close()

	var result []models.CourseSubscription
	for rows.Next() {
		var cs models.CourseSubscription
		if err := rows.Scan(
			&cs.Course.ID, &cs.Course.Title, &cs.Course.Description,
			&cs.Course.Price, &cs.Course.ImageObjectKey, &cs.Course.CreatedAt,
			&cs.Subscription.ID, &cs.Subscription.UserID, &cs.Subscription.CourseID,
			&cs.Subscription.PricePaid, &cs.Subscription.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, cs)
	}
	return result, rows.Err()
}
