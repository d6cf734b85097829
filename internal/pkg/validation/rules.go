package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// PincodePattern is the only accepted shape for pin codes: exactly six decimal digits.
	PincodePattern = `^\d{6}$`

	// NameMaxLength caps free-text name columns
	NameMaxLength = 255
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Pincode *regexp.Regexp
}{
	Pincode: regexp.MustCompile(PincodePattern),
}

// Field names a column together with the label used in messages.
type Field struct {
	Column string
	Label  string
}

// Rules describes the checks applied to one entity's fields.
type Rules struct {
	// Required columns must be present and non-blank.
	Required []Field
	// Pincode is the column holding the pin code, empty when the entity has none.
	Pincode Field
	// PincodeRequired turns an absent pin code into a violation instead of a pass.
	PincodeRequired bool
	// PincodeMessage overrides the default format message.
	PincodeMessage string
}

// IsValidPincode reports whether value is exactly six digits
func IsValidPincode(value string) bool {
	return CompiledPatterns.Pincode.MatchString(value)
}

// Validate checks fields against rules and returns every violation found.
// An empty result means the fields are valid.
func Validate(fields map[string]string, rules Rules) []string {
	var errs []string

	for _, f := range rules.Required {
		if strings.TrimSpace(fields[f.Column]) == "" {
			errs = append(errs, f.Label+" is required")
			continue
		}
		if len(fields[f.Column]) > NameMaxLength {
			errs = append(errs, f.Label+" is too long")
		}
	}

	if rules.Pincode.Column != "" {
		pin := fields[rules.Pincode.Column]
		switch {
		case pin == "" && rules.PincodeRequired:
			if !containsRequired(rules.Required, rules.Pincode.Column) {
				errs = append(errs, rules.Pincode.Label+" is required")
			}
		case pin != "" && !IsValidPincode(pin):
			msg := rules.PincodeMessage
			if msg == "" {
				msg = rules.Pincode.Label + " must be exactly 6 digits"
			}
			errs = append(errs, msg)
		}
	}

	return errs
}

func containsRequired(required []Field, column string) bool {
	for _, f := range required {
		if f.Column == column {
			return true
		}
	}
	return false
}
