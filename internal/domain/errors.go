package domain

import "errors"

// Validation
var (
	ErrMissingFields     = errors.New("missing required fields")
	ErrMissingToken      = errors.New("token is required")
	ErrSelfFollow        = errors.New("cannot follow yourself")
	ErrImageRequired     = errors.New("image is required")
	ErrCaptionRequired   = errors.New("caption is required")
	ErrCommentRequired   = errors.New("comment is required")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrUnsupportedImage  = errors.New("unsupported image format")
	ErrInvalidInput      = errors.New("invalid input")
	ErrPasswordTooLong   = errors.New("password must be at most 72 bytes")
)

// Authentication and authorization
var (
	ErrUnauthenticated    = errors.New("access token missing")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("not allowed to modify this resource")
)

// Lookups
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrNotFollowing    = errors.New("not following this user")
)

// Uniqueness
var (
	ErrUserConflict     = errors.New("username or email already exists")
	ErrAlreadyLiked     = errors.New("already liked")
	ErrAlreadyFollowing = errors.New("already following this user")
)
