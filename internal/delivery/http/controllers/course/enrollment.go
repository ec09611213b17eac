package course

import (
	"context"
	"errors"
	"net/http"

	"CourseMarket/internal/app_errors"
	"CourseMarket/internal/delivery/http/controllers/middleware"
	"CourseMarket/internal/models"
	"CourseMarket/internal/service/pricing"
	"CourseMarket/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EnrollmentService interface {
	Subscribe(ctx context.Context, userID, courseID uuid.UUID, promoCode string) (*models.Subscription, error)
}

type courseGetter interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.CoursePreview, error)
}

type EnrollmentHandler struct {
	log     logger.Log
	service EnrollmentService
	courses courseGetter
	catalog pricing.Catalog
}

func NewEnrollmentHandler(log logger.Log, s EnrollmentService, courses courseGetter, catalog pricing.Catalog) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:     log,
		service: s,
		courses: courses,
		catalog: catalog,
	}
}

type subscribeRequest struct {
	PromoCode string `json:"promo_code"`
}

func (h *EnrollmentHandler) SubscribeCourse(c *gin.Context) {
	courseIDStr := c.Param("course_id")
	if courseIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing course id"})
		return
	}
	courseID, err := uuid.Parse(courseIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	id, ok := c.Get(middleware.ClientIDCtx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID := id.(uuid.UUID)

	var input subscribeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sub, err := h.service.Subscribe(c.Request.Context(), userID, courseID, input.PromoCode)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		case errors.Is(err, app_errors.ErrAlreadySubscribed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrPromoRequired), errors.Is(err, app_errors.ErrInvalidPromo):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.ErrorErr("subscribe failed", err, "course_id", courseID.String())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create subscription"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscription": sub,
		"price_paid":   sub.PricePaid,
	})
}

type promoPreviewRequest struct {
	PromoCode string `json:"promo_code"`
}

// PromoPreview returns the display-only discount estimate for the course
// page. The authoritative price is always recomputed by SubscribeCourse.
func (h *EnrollmentHandler) PromoPreview(c *gin.Context) {
	courseIDStr := c.Param("course_id")
	courseID, err := uuid.Parse(courseIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	var input promoPreviewRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.courses.CourseByID(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, app_errors.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pricing.Preview(h.catalog, course.Price, input.PromoCode))
}
