package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

// add records a new validation issue.
func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// result returns a ValidationError when issues are present.
func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field tags and reports every problem by config key.
func Validate(cfg *Config) error {
	collector := &issueCollector{}
	if err := structValidator.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, fieldErr := range fieldErrs {
			collector.add(configKey(fieldErr.Namespace()), describe(fieldErr))
		}
	}
	return collector.result()
}

// configKey turns "Config.log.level" into "log.level".
func configKey(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of %s (got %q)", strings.ReplaceAll(fieldErr.Param(), " ", "|"), fmt.Sprint(fieldErr.Value()))
	case "gte":
		return fmt.Sprintf("must be >= %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed %s check", fieldErr.Tag())
	}
}
