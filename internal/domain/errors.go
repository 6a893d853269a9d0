package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of every setup validation failure.
	ErrValidation = errors.New("invalid quiz setup")
	// ErrNoCategory is returned when a quiz is requested before a category is chosen.
	ErrNoCategory = fmt.Errorf("%w: select a category", ErrValidation)
	// ErrInvalidAmount is returned when the requested question count is below one.
	ErrInvalidAmount = fmt.Errorf("%w: question count must be at least 1", ErrValidation)

	// ErrSourceUnavailable covers network failures and non-success API responses.
	ErrSourceUnavailable = errors.New("trivia source unavailable")
	// ErrNoResults means the API could not return the requested number of questions.
	ErrNoResults = errors.New("not enough questions for the query")
	// ErrInvalidParameter means the API rejected the query parameters.
	ErrInvalidParameter = errors.New("invalid query parameter")
	// ErrTokenNotFound means the API session token does not exist.
	ErrTokenNotFound = errors.New("session token not found")
	// ErrTokenEmpty means the API session token has returned every question.
	ErrTokenEmpty = errors.New("session token exhausted")
	// ErrRateLimited means too many requests reached the API from this address.
	ErrRateLimited = errors.New("rate limited")
)
