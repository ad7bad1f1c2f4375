package keyValue

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestGetDelConsumesOnce(t *testing.T) {
	Setup(zap.NewNop().Sugar(), nil, true)

	err := Set("pending_invite:abc", "q7xk2p", time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	got, err := GetDel("pending_invite:abc")
	if err != nil {
		t.Fatal(err)
	}
	if got != "q7xk2p" {
		t.Errorf("GetDel returned %q, want %q", got, "q7xk2p")
	}

	got, err = GetDel("pending_invite:abc")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("Second GetDel returned %q, want empty", got)
	}
}

func TestGetExpiredKey(t *testing.T) {
	Setup(zap.NewNop().Sugar(), nil, true)

	err := Set("stale", "value", -time.Second)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Get("stale")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("Get returned %q for an expired key, want empty", got)
	}
}
