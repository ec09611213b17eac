package service

import (
	"CourseMarket/internal/service/auth"
	"CourseMarket/internal/service/course"
	"CourseMarket/internal/service/enrollment"
)

type Collection struct {
	AuthService       *auth.AuthService
	CourseService     *course.CourseService
	EnrollmentService *enrollment.Service
}
