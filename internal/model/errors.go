package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoData              = errors.New("no data returned")
	ErrEmptySeries         = errors.New("no usable prices after dropping missing values")
	ErrMissingField        = errors.New("neither adjusted close nor close field present")
	ErrNoOverlap           = errors.New("series share no common periods")
	ErrInsufficientOverlap = errors.New("series share too few common periods")
)

// SeriesError attaches the ticker a fetch failed for.
type SeriesError struct {
	Ticker string
	Err    error
}

func (e *SeriesError) Error() string { return fmt.Sprintf("%s: %v", e.Ticker, e.Err) }

func (e *SeriesError) Unwrap() error { return e.Err }

// Kind returns the taxonomy name of err, or "Error" when it is not one of ours.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInputError"
	case errors.Is(err, ErrNoData):
		return "NoDataError"
	case errors.Is(err, ErrEmptySeries):
		return "EmptySeriesError"
	case errors.Is(err, ErrMissingField):
		return "MissingFieldError"
	case errors.Is(err, ErrNoOverlap):
		return "NoOverlapError"
	case errors.Is(err, ErrInsufficientOverlap):
		return "InsufficientOverlapError"
	default:
		return "Error"
	}
}
