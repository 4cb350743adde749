package domain

import "errors"

// Authentication and token errors. ErrInvalidCredentials is deliberately
// generic: callers must not be able to tell "unknown email" from "wrong
// password".
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrEmailInUse         = errors.New("email already in use")
	ErrRoleNotFound       = errors.New("role not found")
	ErrUserNotFound       = errors.New("user not found")
)

// Catalog errors.
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryInUse     = errors.New("category has associated products")
	ErrCategoryNameInUse = errors.New("category name already in use")
	ErrValidation        = errors.New("validation failed")
)
