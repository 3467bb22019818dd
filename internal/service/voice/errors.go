package voice

import "errors"

var (
	ErrInvalidRequest   = errors.New("missing audioData or userId")
	ErrModelUnavailable = errors.New("emotion model unavailable")
	ErrPredictionFailed = errors.New("emotion prediction failed")
)
