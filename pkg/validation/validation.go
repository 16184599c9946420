package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Result reports the outcome of validating submission data. FieldErrors is
// populated only when Valid is false and always carries at least one message
// per offending field.
type Result struct {
	Valid       bool
	FieldErrors map[string][]string
}

// Func validates submission data before it reaches the network layer.
// Implementations must be pure: no I/O, no mutation of data, deterministic
// for the same input.
type Func func(data map[string]any) Result

// ContactFields lists the fields checked by the built-in contact policy in
// reporting order.
var ContactFields = []string{"name", "email", "message"}

// Permissive single-@ pattern: non-empty local part, dotted domain with a
// TLD, no whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Contact returns the default contact-form policy: name, email, and message
// are required (non-empty after trimming) and email must look like an
// address. All violations are reported simultaneously.
func Contact() Func {
	return func(data map[string]any) Result {
		fieldErrors := make(map[string][]string)

		if stringField(data, "name") == "" {
			fieldErrors["name"] = append(fieldErrors["name"], "Name is required")
		}

		email := stringField(data, "email")
		switch {
		case email == "":
			fieldErrors["email"] = append(fieldErrors["email"], "Email is required")
		case !emailPattern.MatchString(email):
			fieldErrors["email"] = append(fieldErrors["email"], "Email is invalid")
		}

		if stringField(data, "message") == "" {
			fieldErrors["message"] = append(fieldErrors["message"], "Message is required")
		}

		if len(fieldErrors) == 0 {
			return Result{Valid: true}
		}
		return Result{Valid: false, FieldErrors: fieldErrors}
	}
}

// Required returns a policy that checks the named fields for trimmed
// non-empty values, reporting "<Field> is required" per violation.
func Required(fields ...string) Func {
	return func(data map[string]any) Result {
		fieldErrors := make(map[string][]string)
		for _, field := range fields {
			name := strings.TrimSpace(field)
			if name == "" {
				continue
			}
			if stringField(data, name) == "" {
				fieldErrors[name] = append(fieldErrors[name], fmt.Sprintf("%s is required", titleCase(name)))
			}
		}
		if len(fieldErrors) == 0 {
			return Result{Valid: true}
		}
		return Result{Valid: false, FieldErrors: fieldErrors}
	}
}

// Chain combines validators; field errors are merged and the combined result
// is valid only when every validator passes.
func Chain(validators ...Func) Func {
	return func(data map[string]any) Result {
		merged := make(map[string][]string)
		for _, validate := range validators {
			if validate == nil {
				continue
			}
			result := validate(data)
			if result.Valid {
				continue
			}
			for field, messages := range result.FieldErrors {
				merged[field] = append(merged[field], messages...)
			}
		}
		if len(merged) == 0 {
			return Result{Valid: true}
		}
		return Result{Valid: false, FieldErrors: merged}
	}
}

func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	raw, ok := data[key]
	if !ok || raw == nil {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		value = fmt.Sprint(raw)
	}
	return strings.TrimSpace(value)
}

func titleCase(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
