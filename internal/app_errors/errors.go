package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrCourseNotFound = errors.New("course not found")
var ErrAlreadySubscribed = errors.New("already subscribed to this course")
var ErrPromoRequired = errors.New("promo code required for paid courses")
var ErrInvalidPromo = errors.New("invalid promo code")
var ErrImageNotFound = errors.New("image not found")
