package envcheck

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError_Error_SingleError(t *testing.T) {
	ve := &ValidationError{
		Issues: []Issue{
			{
				Name:    "DATABASE_URL",
				Code:    ErrCodeRequired,
				Message: "[ENV-CHECKER] Missing required variable: DATABASE_URL",
			},
		},
	}

	got := ve.Error()
	want := "env validation failed: 1 error\n  - DATABASE_URL: required ([ENV-CHECKER] Missing required variable: DATABASE_URL)"

	if got != want {
		t.Errorf("ValidationError.Error() with single error\ngot:  %q\nwant: %q", got, want)
	}
}

func TestValidationError_Error_MultipleErrors(t *testing.T) {
	ve := &ValidationError{
		Issues: []Issue{
			{Name: "API_KEY", Code: ErrCodeRequired, Message: "missing"},
			{Name: "PORT", Code: ErrCodeMax, Message: "Variable PORT must be <= 65535"},
			{Name: "EMAIL", Code: ErrCodeFormat, Message: "Variable EMAIL is not a valid email"},
		},
	}

	got := ve.Error()

	if !strings.HasPrefix(got, "env validation failed: 3 errors\n") {
		t.Errorf("ValidationError.Error() header incorrect\ngot: %q", got)
	}

	expectedErrors := []string{
		"  - API_KEY: required (missing)",
		"  - PORT: max (Variable PORT must be <= 65535)",
		"  - EMAIL: format (Variable EMAIL is not a valid email)",
	}

	for _, expected := range expectedErrors {
		if !strings.Contains(got, expected) {
			t.Errorf("ValidationError.Error() missing expected error\ngot:  %q\nwant to contain: %q", got, expected)
		}
	}

	if strings.HasSuffix(got, "\n") {
		t.Errorf("ValidationError.Error() should not end with a newline: %q", got)
	}
}

func TestValidationError_Error_NoErrors(t *testing.T) {
	ve := &ValidationError{Issues: []Issue{}}

	got := ve.Error()
	want := "env validation failed: no errors"

	if got != want {
		t.Errorf("ValidationError.Error() with no errors\ngot:  %q\nwant: %q", got, want)
	}
}

func TestResult_Err(t *testing.T) {
	valid := &Result{Valid: true}
	if err := valid.Err(); err != nil {
		t.Errorf("valid result Err() = %v, want nil", err)
	}

	var nilResult *Result
	if err := nilResult.Err(); err != nil {
		t.Errorf("nil result Err() = %v, want nil", err)
	}

	invalid := &Result{
		Valid:  false,
		Issues: []Issue{{Name: "PORT", Code: ErrCodeRequired, Message: "missing"}},
	}
	err := invalid.Err()

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Err() = %T, want *ValidationError", err)
	}
	if len(ve.Issues) != 1 || ve.Issues[0].Name != "PORT" {
		t.Errorf("unexpected issues: %+v", ve.Issues)
	}
}

func TestFatalError_Error(t *testing.T) {
	fe := &FatalError{Code: 1, Messages: []string{"first", "second"}}
	if got := fe.Error(); got != "first\nsecond" {
		t.Errorf("FatalError.Error() = %q", got)
	}
}
