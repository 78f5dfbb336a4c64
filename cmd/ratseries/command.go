package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/govalues/rational"
	"github.com/govalues/rational/internal/config"
	"github.com/govalues/rational/internal/logger"
	"github.com/govalues/rational/internal/series"
)

const configKey = "config"

func setup(c *cli.Context) error {
	custom, err := config.Initialize(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("digits") {
		custom.Output.Digits = c.Int("digits")
	}
	if c.IsSet("log") {
		custom.Log.Level = c.Int("log")
	}
	if c.IsSet("filter") {
		custom.Log.Filter = c.String("filter")
	}
	if c.IsSet("limiter") {
		custom.Log.Limiter = c.Int("limiter")
	}
	err = custom.Validate()
	if err != nil {
		return err
	}

	logger.SetOutput(c.App.ErrWriter)
	logger.SetLevel(custom.Log.Level)
	logger.SetLimiter(custom.Log.Limiter)
	err = logger.SetFilter(custom.Log.Filter)
	if err != nil {
		return err
	}
	c.App.Metadata[configKey] = custom
	if file := c.String("config"); file != "" {
		logger.Printf("loaded configuration from %s", file)
	}
	logger.Debugf("configuration %+v", *custom)
	return nil
}

func customConfig(c *cli.Context) *config.Custom {
	custom, ok := c.App.Metadata[configKey].(*config.Custom)
	if !ok {
		return config.Default()
	}
	return custom
}

func eulerCmd(c *cli.Context) error {
	custom := customConfig(c)
	order := custom.Euler.Order
	if c.IsSet("order") {
		order = c.Int("order")
	}
	sums, err := series.Euler(order)
	if err != nil {
		return err
	}
	for k, s := range sums {
		logger.Verbosef("euler s%d = %v", k, s)
	}
	e := sums[len(sums)-1]
	fmt.Fprintln(c.App.Writer, "Approximation of Euler's constant via power series.")
	fmt.Fprintf(c.App.Writer, "\te ≈ %v ≈ %s\n", e, approx(e, custom.Output.Digits))
	return nil
}

func zenoCmd(c *cli.Context) error {
	custom := customConfig(c)
	order := custom.Zeno.Order
	if c.IsSet("order") {
		order = c.Int("order")
	}
	sums, err := series.Zeno(order)
	if err != nil {
		return err
	}
	for k, s := range sums {
		logger.Verbosef("zeno s%d = %v", k+1, s)
	}
	z := sums[len(sums)-1]
	fmt.Fprintln(c.App.Writer, "Exploration of Zeno's paradox approaching 1.")
	fmt.Fprintf(c.App.Writer, "\t1 ≈ %v ≈ %s\n", z, approx(z, custom.Output.Digits))
	return nil
}

func evalCmd(c *cli.Context) error {
	if c.NArg() != 3 {
		return fmt.Errorf("eval expects 3 arguments, got %d", c.NArg())
	}
	a, err := rational.Parse(c.Args().Get(0))
	if err != nil {
		return err
	}
	op := c.Args().Get(1)
	b, err := rational.Parse(c.Args().Get(2))
	if err != nil {
		return err
	}
	logger.Verbosef("eval %v %s %v", a, op, b)

	if ok, found := compare(a, op, b); found {
		fmt.Fprintln(c.App.Writer, ok)
		return nil
	}
	r, err := arithmetic(a, op, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%v ≈ %s\n", r, approx(r, customConfig(c).Output.Digits))
	return nil
}

func compare(a rational.Rational, op string, b rational.Rational) (bool, bool) {
	switch op {
	case "<":
		return a.Less(b), true
	case "<=":
		return a.LessEq(b), true
	case ">":
		return a.Greater(b), true
	case ">=":
		return a.GreaterEq(b), true
	case "==":
		return a.Equal(b), true
	case "!=":
		return a.NotEqual(b), true
	}
	return false, false
}

func arithmetic(a rational.Rational, op string, b rational.Rational) (rational.Rational, error) {
	switch op {
	case "+":
		return a.Add(b), nil
	case "-":
		return a.Sub(b), nil
	case "*":
		return a.Mul(b), nil
	case "/":
		return a.Quo(b)
	}
	return rational.Rational{}, fmt.Errorf("unknown operator %q", op)
}

// approx rounds num / den half away from zero to the given decimal places.
func approx(r rational.Rational, digits int) string {
	num := decimal.New(r.Num(), 0)
	den := decimal.New(r.Denom(), 0)
	return num.DivRound(den, int32(digits)).StringFixed(int32(digits)) //nolint:gosec
}
