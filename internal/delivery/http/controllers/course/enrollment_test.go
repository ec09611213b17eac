package course

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CourseMarket/internal/app_errors"
	"CourseMarket/internal/delivery/http/controllers/middleware"
	"CourseMarket/internal/models"
	"CourseMarket/internal/service/pricing"

	"github.com/gin-gonic/gin"
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

type stubEnrollment struct {
	sub    *models.Subscription
	err    error
	called int
}

func (s *stubEnrollment) Subscribe(_ context.Context, userID, courseID uuid.UUID, _ string) (*models.Subscription, error) {
	s.called++
	if s.err != nil {
		return nil, s.err
	}
	sub := *s.sub
	sub.UserID = userID
	sub.CourseID = courseID
	return &sub, nil
}

type stubCourses struct {
	preview *models.CoursePreview
	err     error
}

func (s *stubCourses) CourseByID(context.Context, uuid.UUID) (*models.CoursePreview, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.preview, nil
}

func setupRouter(svc EnrollmentService, courses courseGetter, userID uuid.UUID, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEnrollmentHandler(nopLog{}, svc, courses, pricing.DefaultCatalog())

	fakeAuth := func(c *gin.Context) {
		if !authed {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(middleware.ClientIDCtx, userID)
		c.Next()
	}

	r := gin.New()
	r.POST("/v1/courses/:course_id/subscribe", fakeAuth, h.SubscribeCourse)
	r.POST("/v1/courses/:course_id/promo-preview", h.PromoPreview)
	return r
}

func doSubscribe(t *testing.T, r *gin.Engine, courseID string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/courses/"+courseID+"/subscribe", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubscribeCourseUnauthorized(t *testing.T) {
	svc := &stubEnrollment{}
	r := setupRouter(svc, &stubCourses{}, uuid.New(), false)

	w := doSubscribe(t, r, uuid.NewString(), `{"promo_code":"BFSALE25"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if svc.called != 0 {
		t.Errorf("service called %d times before auth, want 0", svc.called)
	}
}

func TestSubscribeCourseInvalidID(t *testing.T) {
	svc := &stubEnrollment{}
	r := setupRouter(svc, &stubCourses{}, uuid.New(), true)

	w := doSubscribe(t, r, "not-a-uuid", `{"promo_code":"BFSALE25"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if svc.called != 0 {
		t.Errorf("service called %d times on bad id, want 0", svc.called)
	}
}

func TestSubscribeCourseErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "course missing", serviceErr: app_errors.ErrCourseNotFound, wantStatus: http.StatusNotFound},
		{name: "duplicate enrollment", serviceErr: app_errors.ErrAlreadySubscribed, wantStatus: http.StatusConflict},
		{name: "promo required", serviceErr: app_errors.ErrPromoRequired, wantStatus: http.StatusBadRequest},
		{name: "invalid promo", serviceErr: app_errors.ErrInvalidPromo, wantStatus: http.StatusBadRequest},
		{name: "storage failure", serviceErr: context.DeadlineExceeded, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubEnrollment{err: tt.serviceErr}
			r := setupRouter(svc, &stubCourses{}, uuid.New(), true)

			w := doSubscribe(t, r, uuid.NewString(), `{"promo_code":"BFSALE25"}`)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", w.Code, tt.wantStatus, w.Body.String())
			}

			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid error body: %v", err)
			}
			if resp.Error == "" {
				t.Error("error body missing error message")
			}
		})
	}
}

func TestSubscribeCourseSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &stubEnrollment{sub: &models.Subscription{
		ID:        uuid.New(),
		PricePaid: decimal.RequireFromString("20.00"),
		CreatedAt: time.Now().UTC(),
	}}
	r := setupRouter(svc, &stubCourses{}, userID, true)

	courseID := uuid.New()
	w := doSubscribe(t, r, courseID.String(), `{"promo_code":"BFSALE25"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Subscription models.Subscription `json:"subscription"`
		PricePaid    decimal.Decimal     `json:"price_paid"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.PricePaid.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("price_paid = %s, want 20.00", resp.PricePaid)
	}
	if resp.Subscription.UserID != userID || resp.Subscription.CourseID != courseID {
		t.Errorf("subscription identity mismatch: %+v", resp.Subscription)
	}
}

func TestPromoPreview(t *testing.T) {
	coursePrice := decimal.RequireFromString("100.00")
	courses := &stubCourses{preview: &models.CoursePreview{ID: uuid.New(), Price: coursePrice}}
	r := setupRouter(&stubEnrollment{}, courses, uuid.New(), true)

	tests := []struct {
		name        string
		code        string
		wantApplied bool
		wantDisplay string
	}{
		{name: "lowercase code applies", code: "bfsale25", wantApplied: true, wantDisplay: "50.00"},
		{name: "unknown code keeps price", code: "WINTER50", wantApplied: false, wantDisplay: "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(gin.H{"promo_code": tt.code})
			req := httptest.NewRequest(http.MethodPost, "/v1/courses/"+uuid.NewString()+"/promo-preview", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
			}
			var resp struct {
				Applied      bool            `json:"applied"`
				DisplayPrice decimal.Decimal `json:"display_price"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if resp.Applied != tt.wantApplied {
				t.Errorf("applied = %v, want %v", resp.Applied, tt.wantApplied)
			}
			if !resp.DisplayPrice.Equal(decimal.RequireFromString(tt.wantDisplay)) {
				t.Errorf("display_price = %s, want %s", resp.DisplayPrice, tt.wantDisplay)
			}
		})
	}
}

func TestPromoPreviewCourseNotFound(t *testing.T) {
	courses := &stubCourses{err: app_errors.ErrCourseNotFound}
	r := setupRouter(&stubEnrollment{}, courses, uuid.New(), true)

	body := bytes.NewBufferString(`{"promo_code":"BFSALE25"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/courses/"+uuid.NewString()+"/promo-preview", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
