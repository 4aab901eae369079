package domain

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

const (
	ReferencePrefix = "ENQ"

	// referenceSpace bounds the random part: six decimal digits.
	referenceSpace = 1_000_000
)

var referencePattern = regexp.MustCompile(`^ENQ-[0-9]{4}-[0-9]{6}$`)

// NewReference formats n as ENQ-YYMM-NNNNNN using the UTC year and month of now.
// n must be in [0, 1000000).
func NewReference(now time.Time, n int) string {
	now = now.UTC()
	return fmt.Sprintf("%s-%02d%02d-%06d", ReferencePrefix, now.Year()%100, int(now.Month()), n)
}

// GenerateReference draws a uniformly random reference for now.
// Uniqueness is not guaranteed; storage enforces it.
func GenerateReference(now time.Time) string {
	return NewReference(now, rand.IntN(referenceSpace))
}

// IsReference reports whether s has the reference shape.
func IsReference(s string) bool {
	return referencePattern.MatchString(s)
}
