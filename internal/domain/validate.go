package domain

import (
	"strings"
	"time"
)

// MinReleaseYear is the earliest release year the library accepts.
const MinReleaseYear = 1800

// Rating bounds (inclusive).
const (
	MinRating = 0.0
	MaxRating = 10.0
)

// ValidateTitle fails when the trimmed title is empty.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Value: title, Message: "title must not be empty"}
	}
	return nil
}

// ValidateDirector fails when the trimmed director is empty.
func ValidateDirector(director string) error {
	if strings.TrimSpace(director) == "" {
		return &ValidationError{Field: "director", Value: director, Message: "director must not be empty"}
	}
	return nil
}

// ValidateGenre fails when the trimmed genre is empty.
func ValidateGenre(genre string) error {
	if strings.TrimSpace(genre) == "" {
		return &ValidationError{Field: "genre", Value: genre, Message: "genre must not be empty"}
	}
	return nil
}

// ValidateReleaseYear fails outside [1800, current year].
func ValidateReleaseYear(year int) error {
	if year < MinReleaseYear || year > time.Now().Year() {
		return &ValidationError{Field: "releaseYear", Value: year, Message: "release year must be between 1800 and the current year"}
	}
	return nil
}

// ValidateRating fails outside [0, 10].
func ValidateRating(rating float64) error {
	if rating < MinRating || rating > MaxRating {
		return &ValidationError{Field: "rating", Value: rating, Message: "rating must be between 0 and 10"}
	}
	return nil
}

// Validate runs every field check in a fixed order and surfaces the first
// failure: title, director, genre, release year, rating.
func Validate(m Movie) error {
	if err := ValidateTitle(m.Title); err != nil {
		return err
	}
	if err := ValidateDirector(m.Director); err != nil {
		return err
	}
	if err := ValidateGenre(m.Genre); err != nil {
		return err
	}
	if err := ValidateReleaseYear(m.ReleaseYear); err != nil {
		return err
	}
	return ValidateRating(m.Rating)
}

// Sanitize trims the string fields. It does not re-validate.
func Sanitize(m Movie) Movie {
	m.Title = strings.TrimSpace(m.Title)
	m.Director = strings.TrimSpace(m.Director)
	m.Genre = strings.TrimSpace(m.Genre)
	return m
}
