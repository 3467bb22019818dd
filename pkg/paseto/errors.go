package pasetotoken

import "errors"

var (
	// ErrConfig wraps every key or manager configuration problem.
	ErrConfig = errors.New("paseto: bad configuration")
	// ErrInvalidToken wraps parse, signature and claim failures.
	ErrInvalidToken = errors.New("paseto: invalid token")
)
