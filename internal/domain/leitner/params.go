package leitner

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when scheduler parameters are out of bounds.
var ErrInvalidParams = errors.New("invalid scheduler parameters")

// DefaultMaxBucket is the highest bucket a card can be promoted to.
const DefaultMaxBucket = 7

// Params defines all configurable parameters for the scheduler
type Params struct {
	// MaxBucket caps promotion. Cards never move above it.
	MaxBucket int

	// Promotion applied for each successful difficulty.
	EasyStep int
	HardStep int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	MaxBucket int
	EasyStep  int
	HardStep  int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MaxBucket: DefaultMaxBucket,
		EasyStep:  2,
		HardStep:  1,
	}
}

// NewParams creates a new Params instance, overriding defaults with every
// positive value in config.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MaxBucket > 0 {
		params.MaxBucket = config.MaxBucket
	}
	if config.EasyStep > 0 {
		params.EasyStep = config.EasyStep
	}
	if config.HardStep > 0 {
		params.HardStep = config.HardStep
	}

	return params
}

// Validate checks that the parameters describe a usable ladder.
func (p *Params) Validate() error {
	if p.MaxBucket < 1 {
		return fmt.Errorf("%w: max bucket must be at least 1, got %d", ErrInvalidParams, p.MaxBucket)
	}
	// 2^MaxBucket must fit in an int for the cadence check.
	if p.MaxBucket > 30 {
		return fmt.Errorf("%w: max bucket must be at most 30, got %d", ErrInvalidParams, p.MaxBucket)
	}
	if p.EasyStep < 1 || p.HardStep < 1 {
		return fmt.Errorf("%w: promotion steps must be positive", ErrInvalidParams)
	}
	return nil
}
