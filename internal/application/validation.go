package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateID checks that an ID refers to a stored record. Storage never
// assigns IDs below 1.
func ValidateID(fieldName string, id int64) error {
	if id <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid %s: %d", formatFieldName(fieldName), id),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "latinName" -> "latin name")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":             "ID",
		"clientID":       "client ID",
		"plantID":        "plant ID",
		"jobID":          "job ID",
		"latinName":      "latin name",
		"bloomingPeriod": "blooming period",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}
