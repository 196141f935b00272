package summarizer

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// ErrInvalidPolicy is returned by LengthPolicy.Validate.
var ErrInvalidPolicy = errors.New("invalid length policy")

// Budget is the (max, min) summary length handed to an engine.
type Budget struct {
	MaxLength int
	MinLength int
}

// LengthPolicy derives a Budget from the size of the input text.
type LengthPolicy struct {
	MaxScale   float64
	MinScale   float64
	MaxFloor   int
	MaxCeiling int
	MinFloor   int
	MinCeiling int
}

// DefaultPolicy is the policy used for full transcripts.
func DefaultPolicy() LengthPolicy {
	return LengthPolicy{
		MaxScale:   0.5,
		MinScale:   0.1,
		MaxFloor:   50,
		MaxCeiling: 200,
		MinFloor:   20,
		MinCeiling: 50,
	}
}

// PolicyShort produces tighter summaries.
func PolicyShort() LengthPolicy {
	p := DefaultPolicy()
	p.MaxScale = 0.2
	p.MinScale = 0.25
	return p
}

// Validate rejects scales <= 0 and bounds that cannot hold.
func (p LengthPolicy) Validate() error {
	if p.MaxScale <= 0 || p.MinScale <= 0 {
		return fmt.Errorf("%w: scales must be > 0, got %v/%v", ErrInvalidPolicy, p.MaxScale, p.MinScale)
	}
	if p.MaxFloor <= 0 || p.MinFloor <= 0 {
		return fmt.Errorf("%w: floors must be > 0, got %d/%d", ErrInvalidPolicy, p.MaxFloor, p.MinFloor)
	}
	if p.MaxFloor > p.MaxCeiling {
		return fmt.Errorf("%w: max floor %d above ceiling %d", ErrInvalidPolicy, p.MaxFloor, p.MaxCeiling)
	}
	if p.MinFloor > p.MinCeiling {
		return fmt.Errorf("%w: min floor %d above ceiling %d", ErrInvalidPolicy, p.MinFloor, p.MinCeiling)
	}
	return nil
}

// Budget computes the length budget for text. Length is counted in runes.
// MinLength never exceeds MaxLength.
func (p LengthPolicy) Budget(text string) Budget {
	n := utf8.RuneCountInString(text)

	maxLen := clamp(int(math.Round(float64(n)*p.MaxScale)), p.MaxFloor, p.MaxCeiling)
	minLen := clamp(int(math.Round(float64(maxLen)*p.MinScale)), p.MinFloor, p.MinCeiling)
	if minLen > maxLen {
		minLen = maxLen
	}
	return Budget{MaxLength: maxLen, MinLength: minLen}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
