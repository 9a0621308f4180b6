package util

import "errors"

var (
	ErrUserNotFound               = errors.New("user not found")
	ErrEmailRegistered            = errors.New("email already registered")
	ErrInvalidCredentials         = errors.New("invalid credentials")
	ErrAccountDisabled            = errors.New("account is deactivated")
	ErrPermissionDenied           = errors.New("permission denied")
	ErrInvalidRole                = errors.New("invalid role")
	ErrWrongPassword              = errors.New("current password is incorrect")
	ErrPasswordTooShort           = errors.New("new password must be at least 6 characters")
	ErrAssessmentAlreadyCompleted = errors.New("assessment of this type already completed")
	ErrAssessmentNotFound         = errors.New("assessment not found")
	ErrNoAssessments              = errors.New("no assessments found to generate report")
	ErrReportNotFound             = errors.New("report not found")
	ErrInvalidReflection          = errors.New("content (1-1000 characters) and rating (1-5) are required")
	ErrUnsupportedFormat          = errors.New("unsupported export format")
	ErrNotAStudent                = errors.New("linked user is not a student")
)
