package sizing

import "errors"

var (
	// ErrInvalidParameter is returned when a structural precondition is violated.
	ErrInvalidParameter = errors.New("sizing: invalid parameter")
	// ErrRecommendationNotFound is returned when no candidate module count covers mean demand.
	ErrRecommendationNotFound = errors.New("sizing: no candidate module count covers mean demand")
)
