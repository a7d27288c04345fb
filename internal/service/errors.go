package service

import "errors"

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrBadReference       = errors.New("invalid reference")   // 400
	ErrInvalidCredentials = errors.New("invalid credentials") // 400
	ErrForbidden          = errors.New("access denied")       // 403
	ErrNotFound           = errors.New("not found")           // 404
	ErrEmailTaken         = errors.New("email already used")  // 409
)
