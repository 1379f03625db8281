package speller

import "errors"

var (
	ErrInvalidLadder   = errors.New("invalid ladder")
	ErrUnorderedLadder = errors.New("ladder thresholds must be strictly increasing")
)
