package avatar_test

import (
	"chatverse-backend/internal/avatar"
	"testing"
)

func TestUserUrl(t *testing.T) {
	first := avatar.UserUrl("Ada")
	second := avatar.UserUrl("Ada")
	if first != second {
		t.Errorf("UserUrl is not deterministic: %q vs %q", first, second)
	}

	other := avatar.UserUrl("Grace")
	if first == other {
		t.Errorf("UserUrl(%q) == UserUrl(%q) = %q", "Ada", "Grace", first)
	}

	if got, want := first, "https://picsum.photos/seed/Ada/100/100"; got != want {
		t.Errorf("UserUrl(\"Ada\") = %q, want %q", got, want)
	}
}

func TestUserUrlEscapesName(t *testing.T) {
	got := avatar.UserUrl("a b/c")
	want := "https://picsum.photos/seed/a%20b%2Fc/100/100"
	if got != want {
		t.Errorf("UserUrl(\"a b/c\") = %q, want %q", got, want)
	}
}

func TestServerUrl(t *testing.T) {
	if got, want := avatar.ServerUrl(42), "https://picsum.photos/seed/server-42/128/128"; got != want {
		t.Errorf("ServerUrl(42) = %q, want %q", got, want)
	}
}
