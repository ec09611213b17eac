package enrollment

import (
	"context"
	"errors"
	"testing"
	"time"

	"CourseMarket/internal/app_errors"
	"CourseMarket/internal/models"
	"CourseMarket/internal/service/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type nopLog struct{}

func (nopLog) Debug(string, ...interface{})           {}
func (nopLog) Info(string, ...interface{})            {}
func (nopLog) Warn(string, ...interface{})            {}
func (nopLog) Error(string, ...interface{})           {}
func (nopLog) ErrorErr(string, error, ...interface{}) {}
func (nopLog) Fatal(string, ...interface{})           {}
func (nopLog) FatalErr(string, error, ...interface{}) {}

type fakeCourseRepo struct {
	courses map[uuid.UUID]*models.Course
}

func (f *fakeCourseRepo) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return c, nil
}

type fakeSubRepo struct {
	existing  map[string]bool
	insertErr error
	inserts   int
}

func key(userID, courseID uuid.UUID) string {
	return userID.String() + "/" + courseID.String()
}

func (f *fakeSubRepo) Exists(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
	return f.existing[key(userID, courseID)], nil
}

func (f *fakeSubRepo) Insert(_ context.Context, userID, courseID uuid.UUID, pricePaid decimal.Decimal) (*models.Subscription, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserts++
	if f.existing == nil {
		f.existing = map[string]bool{}
	}
	f.existing[key(userID, courseID)] = true
	return &models.Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		PricePaid: pricePaid,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func newTestService(courses map[uuid.UUID]*models.Course, subs *fakeSubRepo) *Service {
	return NewService(nopLog{}, &fakeCourseRepo{courses: courses}, subs, pricing.NewEvaluator(pricing.DefaultCatalog()))
}

func paidCourse(price string) *models.Course {
	return &models.Course{
		ID:    uuid.New(),
		Title: "Paid Course",
		Price: decimal.RequireFromString(price),
	}
}

func TestSubscribePaidCourse(t *testing.T) {
	course := paidCourse("40.00")
	subs := &fakeSubRepo{}
	s := newTestService(map[uuid.UUID]*models.Course{course.ID: course}, subs)
	userID := uuid.New()

	sub, err := s.Subscribe(context.Background(), userID, course.ID, "BFSALE25")
	if err != nil {
		t.Fatalf("Subscribe() unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("20.00"); !sub.PricePaid.Equal(want) {
		t.Errorf("price paid = %s, want %s", sub.PricePaid, want)
	}
	if sub.UserID != userID || sub.CourseID != course.ID {
		t.Errorf("subscription has wrong identity: %+v", sub)
	}
	if subs.inserts != 1 {
		t.Errorf("inserts = %d, want 1", subs.inserts)
	}
}

func TestSubscribeFreeCourseIgnoresPromo(t *testing.T) {
	course := paidCourse("0")
	for _, code := range []string{"", "BFSALE25", "GARBAGE"} {
		subs := &fakeSubRepo{}
		s := newTestService(map[uuid.UUID]*models.Course{course.ID: course}, subs)

		sub, err := s.Subscribe(context.Background(), uuid.New(), course.ID, code)
		if err != nil {
			t.Fatalf("Subscribe() with code %q unexpected error: %v", code, err)
		}
		if !sub.PricePaid.IsZero() {
			t.Errorf("price paid with code %q = %s, want 0", code, sub.PricePaid)
		}
	}
}

func TestSubscribeCourseNotFound(t *testing.T) {
	subs := &fakeSubRepo{}
	s := newTestService(map[uuid.UUID]*models.Course{}, subs)

	_, err := s.Subscribe(context.Background(), uuid.New(), uuid.New(), "BFSALE25")
	if !errors.Is(err, app_errors.ErrCourseNotFound) {
		t.Fatalf("Subscribe() error = %v, want ErrCourseNotFound", err)
	}
	if subs.inserts != 0 {
		t.Errorf("inserts = %d, want 0", subs.inserts)
	}
}

func TestSubscribePromoValidation(t *testing.T) {
	course := paidCourse("40.00")

	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{name: "missing code", code: "", wantErr: app_errors.ErrPromoRequired},
		{name: "unknown code", code: "SUMMER10", wantErr: app_errors.ErrInvalidPromo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := &fakeSubRepo{}
			s := newTestService(map[uuid.UUID]*models.Course{course.ID: course}, subs)

			_, err := s.Subscribe(context.Background(), uuid.New(), course.ID, tt.code)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Subscribe() error = %v, want %v", err, tt.wantErr)
			}
			if subs.inserts != 0 {
				t.Errorf("inserts = %d, want 0 on rejected promo", subs.inserts)
			}
		})
	}
}

func TestSubscribeTwiceYieldsConflict(t *testing.T) {
	course := paidCourse("40.00")
	subs := &fakeSubRepo{}
	s := newTestService(map[uuid.UUID]*models.Course{course.ID: course}, subs)
	userID := uuid.New()

	if _, err := s.Subscribe(context.Background(), userID, course.ID, "BFSALE25"); err != nil {
		t.Fatalf("first Subscribe() unexpected error: %v", err)
	}
	_, err := s.Subscribe(context.Background(), userID, course.ID, "BFSALE25")
	if !errors.Is(err, app_errors.ErrAlreadySubscribed) {
		t.Fatalf("second Subscribe() error = %v, want ErrAlreadySubscribed", err)
	}
	if subs.inserts != 1 {
		t.Errorf("inserts = %d, want exactly 1", subs.inserts)
	}
}

// A concurrent duplicate can pass the existence fast path; the storage
// layer then reports the unique violation, which must surface unchanged.
func TestSubscribeRaceLosesToConstraint(t *testing.T) {
	course := paidCourse("40.00")
	subs := &fakeSubRepo{insertErr: app_errors.ErrAlreadySubscribed}
	s := newTestService(map[uuid.UUID]*models.Course{course.ID: course}, subs)

	_, err := s.Subscribe(context.Background(), uuid.New(), course.ID, "BFSALE25")
	if !errors.Is(err, app_errors.ErrAlreadySubscribed) {
		t.Fatalf("Subscribe() error = %v, want ErrAlreadySubscribed", err)
	}
}

func TestSubscribeStorageFailure(t *testing.T) {
	course := paidCourse("40.00")
	storageErr := errors.New("connection reset")
	subs := &fakeSubRepo{insertErr: storageErr}
	s := newTestService(map[uuid.UUID]*models.Course{course.ID: course}, subs)

	_, err := s.Subscribe(context.Background(), uuid.New(), course.ID, "BFSALE25")
	if !errors.Is(err, storageErr) {
		t.Fatalf("Subscribe() error = %v, want wrapped storage error", err)
	}
}
