package assessment

import "errors"

var (
	ErrUnknownForm       = errors.New("unknown assessment type")
	ErrInvalidResponses  = errors.New("invalid responses")
	ErrMissingUser       = errors.New("userId is required")
	ErrAssessmentStorage = errors.New("assessment could not be stored")
)
