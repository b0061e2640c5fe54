package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validBody() *StudyLogBody {
	return &StudyLogBody{Title: "Math", Minutes: float64(60), Date: "2026-08-26"}
}

func TestValidateStudyLogBody_Valid(t *testing.T) {
	assert.Nil(t, ValidateStudyLogBody(validBody()))

	decimal := validBody()
	decimal.Minutes = 30.5
	assert.Nil(t, ValidateStudyLogBody(decimal))
}

func TestValidateStudyLogBody_MissingBody(t *testing.T) {
	verr := ValidateStudyLogBody(nil)
	assert.NotNil(t, verr)
	assert.Equal(t, KindMissingBody, verr.Kind)
}

func TestValidateStudyLogBody_Title(t *testing.T) {
	body := validBody()
	body.Title = nil
	verr := ValidateStudyLogBody(body)
	assert.Equal(t, KindInvalidTitle, verr.Kind)

	body.Title = float64(42)
	verr = ValidateStudyLogBody(body)
	assert.Equal(t, KindInvalidTitle, verr.Kind)

	body.Title = "   "
	verr = ValidateStudyLogBody(body)
	assert.Equal(t, KindInvalidTitle, verr.Kind)
	assert.Equal(t, "Title cannot be empty", verr.Message)
}

func TestValidateStudyLogBody_MinutesBoundaries(t *testing.T) {
	cases := []struct {
		minutes float64
		valid   bool
		kind    ValidationKind
	}{
		{1440, true, 0},
		{1441, false, KindMinutesOutOfRange},
		{1440.5, false, KindMinutesOutOfRange},
		{0, false, KindMinutesOutOfRange},
		{-10, false, KindMinutesOutOfRange},
		{0.5, true, 0},
	}
	for _, tc := range cases {
		body := validBody()
		body.Minutes = tc.minutes
		verr := ValidateStudyLogBody(body)
		if tc.valid {
			assert.Nil(t, verr, "minutes=%v", tc.minutes)
		} else {
			assert.NotNil(t, verr, "minutes=%v", tc.minutes)
			assert.Equal(t, tc.kind, verr.Kind)
		}
	}
}

func TestValidateStudyLogBody_MinutesMissingAndType(t *testing.T) {
	body := validBody()
	body.Minutes = nil
	verr := ValidateStudyLogBody(body)
	assert.Equal(t, KindMissingMinutes, verr.Kind)

	body.Minutes = "sixty"
	verr = ValidateStudyLogBody(body)
	assert.Equal(t, KindInvalidMinutesType, verr.Kind)
}

func TestValidateStudyLogBody_Date(t *testing.T) {
	body := validBody()
	body.Date = nil
	assert.Equal(t, KindMissingDate, ValidateStudyLogBody(body).Kind)

	for _, bad := range []string{"2026/08/26", "2026-8-26", "26-08-2026", "20260826"} {
		body.Date = bad
		verr := ValidateStudyLogBody(body)
		assert.Equal(t, KindInvalidDateFormat, verr.Kind, "date=%s", bad)
	}

	// Matches the pattern but is not a calendar date.
	body.Date = "2026-13-45"
	verr := ValidateStudyLogBody(body)
	assert.Equal(t, KindInvalidDate, verr.Kind)
	assert.Equal(t, "Invalid date", verr.Message)

	body.Date = "2026-02-29" // 2026 is not a leap year
	assert.Equal(t, KindInvalidDate, ValidateStudyLogBody(body).Kind)
}

func TestValidateStudyLogBody_ShortCircuitOrder(t *testing.T) {
	// Everything is wrong; the title error wins.
	body := &StudyLogBody{Title: "", Minutes: "x", Date: "bad"}
	verr := ValidateStudyLogBody(body)
	assert.Equal(t, KindInvalidTitle, verr.Kind)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, verr := ExtractTokenFromHeader("Bearer abc123xyz")
	assert.Nil(t, verr)
	assert.Equal(t, "abc123xyz", token)

	_, verr = ExtractTokenFromHeader("")
	assert.Equal(t, KindMissingHeader, verr.Kind)

	_, verr = ExtractTokenFromHeader("Basic xyz")
	assert.Equal(t, KindInvalidScheme, verr.Kind)

	// Scheme is case-sensitive.
	_, verr = ExtractTokenFromHeader("bearer x")
	assert.Equal(t, KindInvalidScheme, verr.Kind)

	_, verr = ExtractTokenFromHeader("Bearer ")
	assert.Equal(t, KindEmptyToken, verr.Kind)
}

func TestExtractTokenFromHeader_Verbatim(t *testing.T) {
	// Only the first prefix is stripped and nothing is trimmed.
	token, verr := ExtractTokenFromHeader("Bearer Bearer xyz")
	assert.Nil(t, verr)
	assert.Equal(t, "Bearer xyz", token)

	token, verr = ExtractTokenFromHeader("Bearer  padded")
	assert.Nil(t, verr)
	assert.Equal(t, " padded", token)
}

func TestExtractIDFromURL(t *testing.T) {
	id, verr := ExtractIDFromURL("/study-logs?id=abc-123")
	assert.Nil(t, verr)
	assert.Equal(t, "abc-123", id)

	_, verr = ExtractIDFromURL("")
	assert.Equal(t, KindMissingURL, verr.Kind)

	_, verr = ExtractIDFromURL(":no-scheme")
	assert.Equal(t, KindInvalidURL, verr.Kind)

	_, verr = ExtractIDFromURL("/study-logs")
	assert.Equal(t, KindMissingID, verr.Kind)

	_, verr = ExtractIDFromURL("/study-logs?id=")
	assert.Equal(t, KindMissingID, verr.Kind)

	// First occurrence wins.
	id, verr = ExtractIDFromURL("/study-logs?id=first&id=second")
	assert.Nil(t, verr)
	assert.Equal(t, "first", id)
}
