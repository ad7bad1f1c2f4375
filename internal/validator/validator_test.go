package validator_test

import (
	"chatverse-backend/internal/validator"
	"fmt"
	"strings"
	"testing"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		expectedError error
	}{
		{
			name:          "Valid: Plain name",
			username:      "Ada",
			expectedError: nil,
		},
		{
			name:          "Valid: Unicode name",
			username:      "Ayşe",
			expectedError: nil,
		},
		{
			name:          "Valid: Maximum length (32 runes)",
			username:      strings.Repeat("a", 32),
			expectedError: nil,
		},
		{
			name:          "Error: Empty",
			username:      "",
			expectedError: fmt.Errorf("empty_username"),
		},
		{
			name:          "Error: Too long (33 runes)",
			username:      strings.Repeat("a", 33),
			expectedError: fmt.Errorf("long_username"),
		},
		{
			name:          "Error: Leading whitespace",
			username:      " Ada",
			expectedError: fmt.Errorf("bad_format"),
		},
		{
			name:          "Error: Trailing whitespace",
			username:      "Ada ",
			expectedError: fmt.Errorf("bad_format"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Username(tc.username)

			if tc.expectedError == nil {
				if err != nil {
					t.Errorf("Username(%q) failed unexpectedly: got error %v, want nil", tc.username, err)
				}
				return
			}

			if err == nil {
				t.Errorf("Username(%q) passed unexpectedly: got nil, want error %v", tc.username, tc.expectedError)
				return
			}

			if err.Error() != tc.expectedError.Error() {
				t.Errorf("Username(%q) got error %q, want error %q", tc.username, err.Error(), tc.expectedError.Error())
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedError error
	}{
		{
			name:          "Valid: Minimum length (4 characters)",
			password:      "hunt",
			expectedError: nil,
		},
		{
			name:          "Valid: Maximum length (72 bytes)",
			password:      strings.Repeat("a", 72),
			expectedError: nil,
		},
		{
			name:          "Error: Too short (3 characters)",
			password:      "abc",
			expectedError: fmt.Errorf("short_password"),
		},
		{
			name:          "Error: Empty",
			password:      "",
			expectedError: fmt.Errorf("short_password"),
		},
		{
			name:          "Error: Too long (73 bytes)",
			password:      strings.Repeat("a", 73),
			expectedError: fmt.Errorf("long_password"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Password(tc.password)

			if tc.expectedError == nil {
				if err != nil {
					t.Errorf("Password(%q) failed unexpectedly: got error %v, want nil", tc.password, err)
				}
				return
			}

			if err == nil {
				t.Errorf("Password(%q) passed unexpectedly: got nil, want error %v", tc.password, tc.expectedError)
				return
			}

			if err.Error() != tc.expectedError.Error() {
				t.Errorf("Password(%q) got error %q, want error %q", tc.password, err.Error(), tc.expectedError.Error())
			}
		})
	}
}
