package repository

import (
	backoff "github.com/cenkalti/backoff/v4"
)

// numberBackoff retries immediately, allowing attempts draws in total
func numberBackoff(attempts uint64) backoff.BackOff {
	retries := uint64(0)
	if attempts > 1 {
		retries = attempts - 1
	}
	return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, retries)
}
