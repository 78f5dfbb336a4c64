package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/govalues/rational/internal/logger"
	"github.com/govalues/rational/internal/series"
)

const (
	// DefaultDigits is the number of decimal places of a printed approximation.
	DefaultDigits = 20
	// DefaultEulerOrder is the last k of the Euler partial sum, e ≈ 13563139/4989600.
	DefaultEulerOrder = 11
	// DefaultZenoOrder is the last k of the Zeno partial sum, 1 ≈ 524287/524288.
	DefaultZenoOrder = 19
)

// Custom is the ratseries configuration, decoded from a TOML file with
// the [output], [euler], [zeno] and [log] tables.
type Custom struct {
	Output struct {
		Digits int `toml:"digits"`
	} `toml:"output"`
	Euler struct {
		Order int `toml:"order"`
	} `toml:"euler"`
	Zeno struct {
		Order int `toml:"order"`
	} `toml:"zeno"`
	Log struct {
		Level   int    `toml:"level"`
		Filter  string `toml:"filter"`
		Limiter int    `toml:"limiter"`
	} `toml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Custom {
	var c Custom
	c.Output.Digits = DefaultDigits
	c.Euler.Order = DefaultEulerOrder
	c.Zeno.Order = DefaultZenoOrder
	c.Log.Level = logger.INFO
	return &c
}

// Initialize reads the TOML file and fills the keys it omits with defaults.
// An empty file name yields the defaults.
func Initialize(file string) (*Custom, error) {
	c := Default()
	if file == "" {
		return c, nil
	}
	f, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	err = toml.Unmarshal(f, c)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	return c, c.Validate()
}

// Validate reports the first setting out of range. The series orders are
// bounded by [series.MaxEulerOrder] and [series.MaxZenoOrder].
func (c *Custom) Validate() error {
	if c.Output.Digits < 0 {
		return fmt.Errorf("invalid output digits %d", c.Output.Digits)
	}
	if c.Euler.Order < 0 || c.Euler.Order > series.MaxEulerOrder {
		return fmt.Errorf("invalid euler order %d: %w", c.Euler.Order, series.ErrOrderRange)
	}
	if c.Zeno.Order < 1 || c.Zeno.Order > series.MaxZenoOrder {
		return fmt.Errorf("invalid zeno order %d: %w", c.Zeno.Order, series.ErrOrderRange)
	}
	if c.Log.Limiter < 0 {
		return fmt.Errorf("invalid log limiter %d", c.Log.Limiter)
	}
	return nil
}
