package enrollment

import (
	"context"

	"CourseMarket/internal/app_errors"
	"CourseMarket/internal/models"
	"CourseMarket/internal/service/pricing"
	"CourseMarket/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type subscriptionRepo interface {
	Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	Insert(ctx context.Context, userID, courseID uuid.UUID, pricePaid decimal.Decimal) (*models.Subscription, error)
}

type Service struct {
	log        logger.Log
	courseRepo courseRepo
	subRepo    subscriptionRepo
	evaluator  *pricing.Evaluator
}

func NewService(l logger.Log, c courseRepo, s subscriptionRepo, e *pricing.Evaluator) *Service {
	return &Service{
		log:        l,
		courseRepo: c,
		subRepo:    s,
		evaluator:  e,
	}
}

// Subscribe validates an enrollment attempt and records it. Checks run in
// order and short-circuit: course existence, duplicate subscription, price
// resolution, then the single insert. Nothing is written on any failure.
//
// The duplicate check here is only a fast path. Two concurrent attempts can
// both pass it; the unique index on (user_id, course_id) closes the race
// and the storage layer reports the violation as ErrAlreadySubscribed.
func (s *Service) Subscribe(ctx context.Context, userID, courseID uuid.UUID, promoCode string) (*models.Subscription, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	exists, err := s.subRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, app_errors.ErrAlreadySubscribed
	}

	pricePaid, err := s.evaluator.Quote(course.Price, promoCode)
	if err != nil {
		return nil, err
	}

	sub, err := s.subRepo.Insert(ctx, userID, courseID, pricePaid)
	if err != nil {
		return nil, err
	}
	s.log.Info("user subscribed",
		"user_id", userID.String(),
		"course_id", courseID.String(),
		"price_paid", pricePaid.String(),
	)
	return sub, nil
}
