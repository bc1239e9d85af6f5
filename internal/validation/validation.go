// Package validation sanitizes and screens medical queries before they reach
// the pipeline.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation errors returned to the API layer.
var (
	ErrEmptyQuery      = errors.New("query cannot be empty")
	ErrInvalidPatterns = errors.New("query contains invalid characters or patterns")
	ErrPromptInjection = errors.New("query contains invalid instructions")
)

// injectionPatterns flag markup and code-execution attempts.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script.*?>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`\{\{.*?\}\}`),
	regexp.MustCompile(`\$\{.*?\}`),
	regexp.MustCompile(`(?i)exec\s*\(`),
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`__import__`),
	regexp.MustCompile(`subprocess`),
	regexp.MustCompile(`os\.system`),
}

// promptInjectionPatterns flag attempts to override the system instructions.
var promptInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(previous|all|above)\s+(instructions?|prompts?)`),
	regexp.MustCompile(`(?i)disregard\s+(previous|all|your)\s+(instructions?|rules?)`),
	regexp.MustCompile(`(?i)forget\s+(everything|all|your)\s+(instructions?|training)`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+a`),
	regexp.MustCompile(`(?i)pretend\s+(you\s+are|to\s+be)`),
	regexp.MustCompile(`(?i)act\s+as\s+(if|a)`),
	regexp.MustCompile(`(?i)new\s+instructions?:`),
	regexp.MustCompile(`(?i)system\s*:\s*`),
	regexp.MustCompile(`(?i)\[system\]`),
	regexp.MustCompile(`<\|im_start\|>`),
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// Validator sanitizes and validates query strings.
type Validator struct {
	maxLength int
}

// NewValidator creates a validator with the given maximum query length.
func NewValidator(maxLength int) *Validator {
	return &Validator{maxLength: maxLength}
}

// Sanitize strips null bytes and HTML tags, normalizes whitespace, and
// truncates to the maximum length.
func (v *Validator) Sanitize(query string) string {
	s := strings.TrimSpace(query)
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.Join(strings.Fields(s), " ")
	s = htmlTagPattern.ReplaceAllString(s, "")
	if utf8.RuneCountInString(s) > v.maxLength {
		s = string([]rune(s)[:v.maxLength])
	}
	return s
}

// Validate checks a query for emptiness, length, and injection patterns.
func (v *Validator) Validate(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	if utf8.RuneCountInString(query) > v.maxLength {
		return fmt.Errorf("query exceeds maximum length of %d characters", v.maxLength)
	}

	for _, p := range injectionPatterns {
		if p.MatchString(query) {
			return ErrInvalidPatterns
		}
	}
	for _, p := range promptInjectionPatterns {
		if p.MatchString(query) {
			return ErrPromptInjection
		}
	}

	return nil
}

// ValidateAndSanitize sanitizes first, then validates the result.
func (v *Validator) ValidateAndSanitize(query string) (string, error) {
	sanitized := v.Sanitize(query)
	if err := v.Validate(sanitized); err != nil {
		return "", err
	}
	return sanitized, nil
}
