package service

import (
	"errors"

	"WishlistX/internal/repo"
)

var (
	ErrPhoneTaken         = errors.New("phone already registered")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrNotConfirmed       = errors.New("phone is not confirmed")
	ErrInvalidCode        = errors.New("invalid confirmation code")
	ErrNoFreeCode         = errors.New("no free confirmation code")
	ErrNotFound           = repo.ErrNotFound
)

// InputError — входные данные не прошли проверку.
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return "invalid input: " + e.Err.Error() }
func (e *InputError) Unwrap() error { return e.Err }
