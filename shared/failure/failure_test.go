package failure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	fail := &Failure{Code: http.StatusBadRequest, Message: "something went wrong"}

	if fail.Error() != "something went wrong" {
		t.Errorf("expected message %q, got %q", "something went wrong", fail.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "bad request from error",
			err:          BadRequest(errors.New("invalid payload")),
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "invalid payload",
		},
		{
			name:         "bad request from string",
			err:          BadRequestFromString("invalid date format"),
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "invalid date format",
		},
		{
			name:         "unauthorized",
			err:          Unauthorized("invalid credentials"),
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "invalid credentials",
		},
		{
			name:         "locked",
			err:          Locked("account is locked"),
			expectedCode: http.StatusLocked,
			expectedMsg:  "account is locked",
		},
		{
			name:         "forbidden",
			err:          Forbidden("not allowed"),
			expectedCode: http.StatusForbidden,
			expectedMsg:  "not allowed",
		},
		{
			name:         "not found",
			err:          NotFound("appointment not found"),
			expectedCode: http.StatusNotFound,
			expectedMsg:  "appointment not found",
		},
		{
			name:         "conflict",
			err:          Conflict("slot is already booked"),
			expectedCode: http.StatusConflict,
			expectedMsg:  "slot is already booked",
		},
		{
			name:         "unprocessable entity",
			err:          UnprocessableEntity("appointment is outside business hours"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedMsg:  "appointment is outside business hours",
		},
		{
			name:         "internal error",
			err:          InternalError(errors.New("connection refused")),
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "connection refused",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var fail *Failure
			if !errors.As(test.err, &fail) {
				t.Fatalf("expected a *Failure, got %T", test.err)
			}

			if fail.Code != test.expectedCode {
				t.Errorf("expected code %d, got %d", test.expectedCode, fail.Code)
			}

			if fail.Message != test.expectedMsg {
				t.Errorf("expected message %q, got %q", test.expectedMsg, fail.Message)
			}
		})
	}
}

func TestNilErrors(t *testing.T) {
	if err := BadRequest(nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}

	if err := InternalError(nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{
			name:         "failure error",
			err:          NotFound("client not found"),
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "wrapped failure error",
			err:          fmt.Errorf("failed to get client: %w", NotFound("client not found")),
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "plain error",
			err:          errors.New("some error"),
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if code := GetCode(test.err); code != test.expectedCode {
				t.Errorf("expected code %d, got %d", test.expectedCode, code)
			}
		})
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		expected bool
	}{
		{
			name:     "matching code",
			err:      Conflict("slot is already booked"),
			code:     http.StatusConflict,
			expected: true,
		},
		{
			name:     "wrapped matching code",
			err:      fmt.Errorf("failed to create appointment: %w", Conflict("slot is already booked")),
			code:     http.StatusConflict,
			expected: true,
		},
		{
			name:     "different code",
			err:      Conflict("slot is already booked"),
			code:     http.StatusNotFound,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("some error"),
			code:     http.StatusInternalServerError,
			expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Is(test.err, test.code); got != test.expected {
				t.Errorf("expected %t, got %t", test.expected, got)
			}
		})
	}
}
