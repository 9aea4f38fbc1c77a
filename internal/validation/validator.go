// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// memSizePattern matches DuckDB memory limits such as "2GB", "512 MiB" or "80%".
var memSizePattern = regexp.MustCompile(`^(?i)\s*\d+(\.\d+)?\s*(b|kb|mb|gb|tb|kib|mib|gib|tib|%)\s*$`)

// FieldError is one failed constraint.
type FieldError struct {
	// Field is the namespaced field, e.g. "Config.Server.Port".
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Error collects the failed constraints of one struct.
type Error struct {
	Fields []FieldError
}

// Error joins every field message.
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Fields))
	for i := range e.Fields {
		messages[i] = e.Fields[i].Message
	}
	return strings.Join(messages, "; ")
}

// Details is the error details object of a VALIDATION_ERROR response.
func (e *Error) Details() map[string]interface{} {
	fields := e.Fields
	if fields == nil {
		fields = []FieldError{}
	}
	return map[string]interface{}{"fields": fields}
}

// GetValidator returns the process-wide validator with the custom tags
// registered. Safe for concurrent use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Registration only fails on an empty tag or nil func.
		_ = validate.RegisterValidation("memsize", validateMemSize)
		_ = validate.RegisterValidation("label", validateLabel)
	})

	return validate
}

// validateMemSize accepts DuckDB max_memory values.
func validateMemSize(fl validator.FieldLevel) bool {
	return memSizePattern.MatchString(fl.Field().String())
}

// validateLabel accepts category labels: non-blank, no control characters.
func validateLabel(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}

// ValidateStruct checks s against its validate tags. It returns nil or an
// *Error listing every failure.
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    return verr
//	}
func ValidateStruct(s interface{}) *Error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: s was not a struct.
		return &Error{Fields: []FieldError{{Field: "", Tag: "invalid", Message: err.Error()}}}
	}

	out := &Error{Fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		out.Fields[i] = FieldError{
			Field:   fe.Namespace(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		}
	}
	return out
}

// plainMessages format with the short field name.
var plainMessages = map[string]string{
	"required": "%s is required",
	"memsize":  "%s must be a memory size such as 2GB or 75%%",
	"label":    "%s must be a non-blank category label",
}

// paramMessages format with the short field name and the tag parameter.
var paramMessages = map[string]string{
	"oneof":      "%s must be one of: %s",
	"gte":        "%s must be greater than or equal to %s",
	"lte":        "%s must be less than or equal to %s",
	"gt":         "%s must be greater than %s",
	"lt":         "%s must be less than %s",
	"gtefield":   "%s must be greater than or equal to %s",
	"startswith": "%s must start with %s",
}

func message(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if tmpl, ok := plainMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}

	unit := ""
	if fe.Kind().String() == "string" {
		unit = " characters"
	}
	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
