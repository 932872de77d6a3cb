package domain

import "errors"

var (
	ErrInvalidGrantID      = errors.New("invalid grant id")
	ErrInvalidResearcherID = errors.New("invalid researcher id")
	ErrInvalidAction       = errors.New("invalid action")
	ErrInvalidLimit        = errors.New("invalid limit")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrVoteNotFound        = errors.New("vote not found")
)
