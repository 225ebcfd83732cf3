// Package config reads the runtime configuration of the contract checker
// from the CONTRACTS environment variable.
//
// The format follows the GORACE option string of the Go race runtime: space
// separated key=value pairs.
//
//	CONTRACTS="handler=raise stack=0"
//
// Keys:
//
//	handler   abort | raise | log    (default abort)
//	exitcode  1..125                 (default 2)
//	color     auto | always | never  (default auto)
//	stack     0 | 1                  (default 1)
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/kolkov/contracts/internal/contract/violation"
)

// EnvVar is the environment variable read by FromEnv.
const EnvVar = "CONTRACTS"

// HandlerMode selects the base violation handler.
type HandlerMode string

const (
	HandlerAbort HandlerMode = "abort"
	HandlerRaise HandlerMode = "raise"
	HandlerLog   HandlerMode = "log"
)

// ColorMode controls colouring of formatted reports.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the parsed runtime configuration.
type Config struct {
	Handler  HandlerMode
	ExitCode int
	Color    ColorMode
	Stack    bool
}

// Default returns the configuration used when CONTRACTS is unset.
func Default() Config {
	return Config{
		Handler:  HandlerAbort,
		ExitCode: violation.DefaultExitCode,
		Color:    ColorAuto,
		Stack:    true,
	}
}

// Error describes one invalid CONTRACTS entry.
type Error struct {
	Key     string // Option name, empty if the entry had no '='
	Value   string // Raw value or the whole entry
	Message string
}

// Error implements the error interface.
//
// Format: CONTRACTS: key=value: message
func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %q: %s", EnvVar, e.Value, e.Message)
	}
	return fmt.Sprintf("%s: %s=%s: %s", EnvVar, e.Key, e.Value, e.Message)
}

// Parse parses an option string.
//
// Valid entries are applied even when others are rejected; the returned
// error joins one *Error per rejected entry. Later entries override earlier
// ones.
func Parse(s string) (Config, error) {
	cfg := Default()
	var errs []error

	for _, field := range strings.Fields(s) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			errs = append(errs, &Error{Value: field, Message: "expected key=value"})
			continue
		}
		if err := cfg.set(key, value); err != nil {
			errs = append(errs, err)
		}
	}

	return cfg, errors.Join(errs...)
}

func (c *Config) set(key, value string) error {
	switch key {
	case "handler":
		switch m := HandlerMode(value); m {
		case HandlerAbort, HandlerRaise, HandlerLog:
			c.Handler = m
		default:
			return &Error{Key: key, Value: value, Message: "want abort, raise or log"}
		}

	case "exitcode":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 125 {
			return &Error{Key: key, Value: value, Message: "want an integer in 1..125"}
		}
		c.ExitCode = n

	case "color":
		switch m := ColorMode(value); m {
		case ColorAuto, ColorAlways, ColorNever:
			c.Color = m
		default:
			return &Error{Key: key, Value: value, Message: "want auto, always or never"}
		}

	case "stack":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &Error{Key: key, Value: value, Message: "want 0 or 1"}
		}
		c.Stack = b

	default:
		return &Error{Key: key, Value: value, Message: "unknown option"}
	}
	return nil
}

// FromEnv parses CONTRACTS. Invalid entries are logged at warn level on
// logger (slog.Default if nil) and skipped.
func FromEnv(logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.Default()
	}

	raw, ok := os.LookupEnv(EnvVar)
	if !ok {
		return Default()
	}

	cfg, err := Parse(raw)
	if err != nil {
		logger.Warn("invalid contract configuration, using defaults for rejected entries",
			"env", EnvVar,
			"value", raw,
			"error", err)
	}
	return cfg
}

// NewHandler builds the base handler the configuration selects. Abort writes
// to w (stderr if nil); Log writes to logger.
func (c Config) NewHandler(w io.Writer, logger *slog.Logger) violation.Handler {
	switch c.Handler {
	case HandlerRaise:
		return violation.Raise{}
	case HandlerLog:
		return violation.NewLog(logger)
	default:
		return violation.NewAbort(w, c.ExitCode)
	}
}

// Apply makes the configuration effective: it replaces reg's base handler,
// sets stack capture and adjusts report colouring.
func (c Config) Apply(reg *violation.Registry, logger *slog.Logger) {
	reg.Replace(c.NewHandler(nil, logger))
	reg.CaptureStack = c.Stack

	switch c.Color {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	}
}
