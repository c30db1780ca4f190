package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrFeedbackNotAllowed = errors.New("ai feedback not allowed")
	ErrSessionNotFound    = errors.New("guest session not found")
	ErrPermissionDenied   = errors.New("permission denied")
)
