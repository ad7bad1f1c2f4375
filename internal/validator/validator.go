package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func Username(name string) error {
	if name == "" {
		return fmt.Errorf("empty_username")
	}

	if utf8.RuneCountInString(name) > 32 {
		return fmt.Errorf("long_username")
	}

	if strings.TrimSpace(name) != name {
		return fmt.Errorf("bad_format")
	}

	return nil
}

func Password(password string) error {
	if len(password) < 4 {
		return fmt.Errorf("short_password")
	}

	// bcrypt only reads the first 72 bytes of its input
	if len(password) > 72 {
		return fmt.Errorf("long_password")
	}

	return nil
}
