package snowflake

import (
	"testing"
	"time"
)

func TestSetup(t *testing.T) {
	err := Setup(3)
	if err != nil {
		t.Error(err)
	}

	err = Setup(3)
	if err == nil {
		t.Error("Expected error on second Setup, got nil")
	}
}

func TestGenerate(t *testing.T) {
	id, err := Generate()
	if err != nil {
		t.Fatal(err)
	}

	parts := Extract(id)
	if parts.WorkerID != 3 {
		t.Errorf("Extracted worker ID %d, want 3", parts.WorkerID)
	}

	age := time.Since(ExtractTime(id))
	if age < 0 || age > time.Minute {
		t.Errorf("Extracted timestamp is off by %s", age)
	}
}

func TestGenerateMonotonic(t *testing.T) {
	var prev int64
	for i := 0; i < 1000; i++ {
		id, err := Generate()
		if err != nil {
			// increment overflow within a single millisecond, acceptable
			return
		}
		if id <= prev {
			t.Fatalf("Generated ID %d is not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestIncrementOverflow(t *testing.T) {
	for i := 0; i < 100000; i++ {
		_, err := Generate()
		if err != nil {
			return
		}
	}
	t.Error("Expected increment overflow, but there wasn't")
}
