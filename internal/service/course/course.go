package course

import (
	"context"
	"fmt"

	"CourseMarket/internal/models"
	"CourseMarket/pkg/logger"

	"github.com/google/uuid"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListCourses(ctx context.Context, limit int, offset int) ([]models.Course, error)
	CountCourses(ctx context.Context) (int, error)
}

type searchRepo interface {
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
	Count(ctx context.Context, query string) (int, error)
}

type imageRepo interface {
	GetImageURL(ctx context.Context, objectKey string) (string, error)
}

type subscriptionRepo interface {
	SubscribedCourses(ctx context.Context, userID uuid.UUID) ([]models.CourseSubscription, error)
}

type CourseService struct {
	log        logger.Log
	courseRepo courseRepo
	searchRepo searchRepo
	imageRepo  imageRepo
	subRepo    subscriptionRepo
}

func NewCourseService(log logger.Log, courseRepo courseRepo, searchRepo searchRepo,
	imageRepo imageRepo, subRepo subscriptionRepo,
) *CourseService {
	return &CourseService{
		log:        log,
		courseRepo: courseRepo,
		searchRepo: searchRepo,
		imageRepo:  imageRepo,
		subRepo:    subRepo,
	}
}

func (s *CourseService) preview(ctx context.Context, c *models.Course) models.CoursePreview {
	var imageURL string
	if c.ImageObjectKey != "" {
		u, err := s.imageRepo.GetImageURL(ctx, c.ImageObjectKey)
		if err != nil {
			s.log.ErrorErr("preview: failed to get image URL", err)
		} else {
			imageURL = u
		}
	}

	return models.CoursePreview{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		ImageURL:    imageURL,
		CreatedAt:   c.CreatedAt,
	}
}

func (s *CourseService) CourseByID(ctx context.Context, id uuid.UUID) (*models.CoursePreview, error) {
	course, err := s.courseRepo.CourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	preview := s.preview(ctx, course)
	return &preview, nil
}

func (s *CourseService) CoursesPreview(ctx context.Context, count int, offset int) ([]models.CoursePreview, int, error) {
	courses, err := s.courseRepo.ListCourses(ctx, count, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.courseRepo.CountCourses(ctx)
	if err != nil {
		return nil, 0, err
	}

	previews := make([]models.CoursePreview, 0, len(courses))
	for i := range courses {
		previews = append(previews, s.preview(ctx, &courses[i]))
	}

	return previews, total, nil
}

func (s *CourseService) SearchCoursesPreview(ctx context.Context, query string, count int, offset int) ([]models.CoursePreview, int, error) {
	ids, err := s.searchRepo.Search(ctx, query, count+offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search preview: search failed: %w", err)
	}

	if len(ids) > offset {
		ids = ids[offset:]
	} else {
		ids = nil
	}
	if len(ids) > count {
		ids = ids[:count]
	}

	if len(ids) == 0 {
		return []models.CoursePreview{}, 0, nil
	}

	total, err := s.searchRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("search count failed: %w", err)
	}

	previews := make([]models.CoursePreview, 0, len(ids))
	for _, id := range ids {
		course, err := s.courseRepo.CourseByID(ctx, id)
		if err != nil {
			s.log.ErrorErr("search preview: failed to load course by id", err)
			continue
		}
		previews = append(previews, s.preview(ctx, course))
	}

	return previews, total, nil
}

func (s *CourseService) GetSubscribedCourses(ctx context.Context, userID uuid.UUID) ([]models.SubscribedCourse, error) {
	rows, err := s.subRepo.SubscribedCourses(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.SubscribedCourse, 0, len(rows))
	for i := range rows {
		result = append(result, models.SubscribedCourse{
			Course:       s.preview(ctx, &rows[i].Course),
			PricePaid:    rows[i].Subscription.PricePaid,
			SubscribedAt: rows[i].Subscription.CreatedAt,
		})
	}
	return result, nil
}
