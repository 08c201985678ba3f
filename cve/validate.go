package cve

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

const (
	yearMin          = 1995
	pageMin          = 1
	pageMax          = 100000
	commentMaxLength = 255
)

var (
	cveIDPattern   = regexp.MustCompile(`^CVE-\d{4}-\d{4,}$`)
	keywordPattern = regexp.MustCompile(`^[0-9A-Za-z]{1,32}$`)

	// Labels are the label identifiers the API accepts.
	Labels = []string{"1", "2", "3", "4"}
)

// ValidationError reports a parameter the API would reject.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Msg)
}

func ValidateSeverity(s string) error {
	if !slices.Contains(Severities, Severity(s)) {
		return &ValidationError{Field: "severity", Value: s, Msg: "unknown severity"}
	}
	return nil
}

// ValidateYear accepts years from 1995 up to the year of now.
func ValidateYear(s string, now time.Time) error {
	year, err := strconv.Atoi(s)
	if err != nil {
		return &ValidationError{Field: "year", Value: s, Msg: "not an integer"}
	}
	if year < yearMin || year > now.Year() {
		return &ValidationError{Field: "year", Value: s, Msg: fmt.Sprintf("must be between %d and %d", yearMin, now.Year())}
	}
	return nil
}

func ValidatePage(page int) error {
	if page < pageMin || page > pageMax {
		return &ValidationError{Field: "page", Value: strconv.Itoa(page), Msg: fmt.Sprintf("must be between %d and %d", pageMin, pageMax)}
	}
	return nil
}

func ValidateKeyword(keyword string) error {
	if !keywordPattern.MatchString(keyword) {
		return &ValidationError{Field: "keyword", Value: keyword, Msg: "must be up to 32 alphanumeric characters"}
	}
	return nil
}

func ValidateLabel(label string) error {
	if !slices.Contains(Labels, label) {
		return &ValidationError{Field: "label", Value: label, Msg: "unknown label"}
	}
	return nil
}

func ValidateComment(comment string) error {
	if utf8.RuneCountInString(comment) > commentMaxLength {
		return &ValidationError{Field: "comment", Value: comment, Msg: fmt.Sprintf("must be up to %d characters", commentMaxLength)}
	}
	return nil
}

func ValidateCveID(id string) error {
	if !cveIDPattern.MatchString(id) {
		return &ValidationError{Field: "cve_id", Value: id, Msg: "malformed CVE-ID"}
	}
	return nil
}
