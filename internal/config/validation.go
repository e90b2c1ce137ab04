package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Server.Listen) == "" {
		errs = append(errs, ValidationError{Field: "server.listen", Message: "must not be empty"})
	}
	if c.Faceit.BaseURL == "" {
		errs = append(errs, ValidationError{Field: "faceit.base_url", Message: "must not be empty"})
	}
	if c.Faceit.Timeout <= 0 {
		errs = append(errs, ValidationError{Field: "faceit.timeout", Message: fmt.Sprintf("must be positive, got %s", c.Faceit.Timeout)})
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		errs = append(errs, ValidationError{Field: "cache.path", Message: "required when cache is enabled"})
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, ValidationError{Field: "cache.ttl", Message: "must not be negative"})
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{Field: "log.format", Message: fmt.Sprintf("must be text or json, got %q", c.Log.Format)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
