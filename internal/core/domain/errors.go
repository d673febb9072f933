package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnsupportedRole    = errors.New("role cannot log in")
)
