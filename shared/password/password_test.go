package password

import (
	"errors"
	"strings"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectedErr error
	}{
		{
			name:        "valid password",
			password:    "secret-password",
			expectedErr: nil,
		},
		{
			name:        "empty password",
			password:    "",
			expectedErr: ErrEmptyPassword,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hash, err := Hash(test.password)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}

			if test.expectedErr != nil {
				return
			}

			if hash == "" {
				t.Error("expected a non-empty hash")
			}

			if hash == test.password {
				t.Error("expected hash to differ from the plain password")
			}

			if !strings.HasPrefix(hash, "$2a$") {
				t.Errorf("expected a bcrypt hash, got %q", hash)
			}
		})
	}
}

func TestHash_UniqueSalt(t *testing.T) {
	first, err := Hash("secret-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := Hash("secret-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("expected different hashes for the same password")
	}
}

func TestVerify(t *testing.T) {
	hash, err := Hash("secret-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		password    string
		hash        string
		expectedErr error
	}{
		{
			name:        "matching password",
			password:    "secret-password",
			hash:        hash,
			expectedErr: nil,
		},
		{
			name:        "wrong password",
			password:    "wrong-password",
			hash:        hash,
			expectedErr: ErrInvalidPassword,
		},
		{
			name:        "empty password",
			password:    "",
			hash:        hash,
			expectedErr: ErrInvalidPassword,
		},
		{
			name:        "empty hash",
			password:    "secret-password",
			hash:        "",
			expectedErr: ErrInvalidPassword,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := Verify(test.password, test.hash); !errors.Is(err, test.expectedErr) {
				t.Errorf("expected error %v, got %v", test.expectedErr, err)
			}
		})
	}
}

func TestCheckStrength(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectedErr error
	}{
		{
			name:        "strong enough",
			password:    "secret",
			expectedErr: nil,
		},
		{
			name:        "too short",
			password:    "12345",
			expectedErr: ErrWeakPassword,
		},
		{
			name:        "empty",
			password:    "",
			expectedErr: ErrWeakPassword,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := CheckStrength(test.password); !errors.Is(err, test.expectedErr) {
				t.Errorf("expected error %v, got %v", test.expectedErr, err)
			}
		})
	}
}
