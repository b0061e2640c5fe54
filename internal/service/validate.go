package service

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ValidationKind classifies why a payload or header was rejected.
type ValidationKind int

const (
	KindMissingBody ValidationKind = iota
	KindInvalidTitle
	KindMissingMinutes
	KindInvalidMinutesType
	KindMinutesOutOfRange
	KindMissingDate
	KindInvalidDateFormat
	KindInvalidDate
	KindMissingHeader
	KindInvalidScheme
	KindEmptyToken
	KindMissingURL
	KindInvalidURL
	KindMissingID
	KindInvalidInput
	KindInvalidTime
	KindInvalidType
	KindInvalidDays
)

type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(kind ValidationKind, msg string) *ValidationError {
	return &ValidationError{Kind: kind, Message: msg}
}

// StudyLogBody is the raw POST /study-logs payload. Fields are deliberately
// loose-typed so that a wrong JSON type (minutes as a string, title as a
// number) is distinguishable from a missing field.
type StudyLogBody struct {
	Title   any `json:"title"`
	Minutes any `json:"minutes"`
	Date    any `json:"date"`
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateStudyLogBody checks the payload field by field and stops at the
// first failure: body presence, then title, then minutes, then date.
// A nil return means the body is valid.
func ValidateStudyLogBody(body *StudyLogBody) *ValidationError {
	if body == nil {
		return invalid(KindMissingBody, "Request body is required")
	}

	title, ok := body.Title.(string)
	if !ok {
		return invalid(KindInvalidTitle, "Title is required and must be a string")
	}
	if strings.TrimSpace(title) == "" {
		return invalid(KindInvalidTitle, "Title cannot be empty")
	}

	if body.Minutes == nil {
		return invalid(KindMissingMinutes, "Minutes is required")
	}
	minutes, ok := body.Minutes.(float64)
	if !ok {
		return invalid(KindInvalidMinutesType, "Minutes must be a number")
	}
	if minutes <= 0 {
		return invalid(KindMinutesOutOfRange, "Minutes must be greater than 0")
	}
	if minutes > 1440 {
		return invalid(KindMinutesOutOfRange, "Minutes cannot exceed 1440 (24 hours)")
	}

	date, ok := body.Date.(string)
	if !ok || date == "" {
		return invalid(KindMissingDate, "Date is required and must be a string")
	}
	if !dateRe.MatchString(date) {
		return invalid(KindInvalidDateFormat, "Date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return invalid(KindInvalidDate, "Invalid date")
	}

	return nil
}

// ExtractTokenFromHeader pulls the bearer token out of a raw Authorization
// header. The scheme check is exact and case-sensitive ("Bearer " with one
// trailing space) and the remainder is returned verbatim, untrimmed: a
// header of "Bearer Bearer xyz" yields the token "Bearer xyz".
func ExtractTokenFromHeader(header string) (string, *ValidationError) {
	if header == "" {
		return "", invalid(KindMissingHeader, "Authorization header is missing")
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", invalid(KindInvalidScheme, `Authorization header must start with "Bearer "`)
	}
	token := header[len("Bearer "):]
	if token == "" {
		return "", invalid(KindEmptyToken, "Token is empty")
	}
	return token, nil
}

// ExtractIDFromURL returns the first "id" query parameter of rawURL.
func ExtractIDFromURL(rawURL string) (string, *ValidationError) {
	if rawURL == "" {
		return "", invalid(KindMissingURL, "URL is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", invalid(KindInvalidURL, "Invalid URL")
	}
	id := u.Query().Get("id")
	if strings.TrimSpace(id) == "" {
		return "", invalid(KindMissingID, "ID is required")
	}
	return id, nil
}
