package service

import (
	"errors"
	"fmt"
)

var (
	// ErrRecipeNotFound means no active recipe matched the lookup.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrNoActiveRecipes means the active set is empty, so nothing can be sampled.
	ErrNoActiveRecipes = errors.New("no active recipes")
	// ErrMissingContent marks an active recipe without its content row.
	ErrMissingContent = errors.New("recipe has no content")
	// ErrDataAccess wraps every other storage failure.
	ErrDataAccess = errors.New("data access failure")
)

// IsNotFound reports whether err is one of the legitimate "nothing there" outcomes.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecipeNotFound) || errors.Is(err, ErrNoActiveRecipes)
}

func dataAccess(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDataAccess, op, err)
}
