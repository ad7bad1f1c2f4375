package progression_test

import (
	"chatverse-backend/internal/progression"
	"testing"
)

func TestGain(t *testing.T) {
	tests := []struct {
		name   string
		start  progression.State
		amount int64
		want   progression.State
	}{
		{
			name:   "No level up",
			start:  progression.State{Level: 1, Xp: 10, XpToNextLevel: 50},
			amount: 5,
			want:   progression.State{Level: 1, Xp: 15, XpToNextLevel: 50},
		},
		{
			name:   "Roll over near the threshold",
			start:  progression.State{Level: 1, Xp: 48, XpToNextLevel: 50},
			amount: 5,
			want:   progression.State{Level: 2, Xp: 3, XpToNextLevel: 75},
		},
		{
			name:   "Exact threshold levels up with zero remainder",
			start:  progression.State{Level: 1, Xp: 45, XpToNextLevel: 50},
			amount: 5,
			want:   progression.State{Level: 2, Xp: 0, XpToNextLevel: 75},
		},
		{
			name:   "Threshold grows by floored halves",
			start:  progression.State{Level: 2, Xp: 74, XpToNextLevel: 75},
			amount: 5,
			want:   progression.State{Level: 3, Xp: 4, XpToNextLevel: 112},
		},
		{
			name:   "Batched gain cascades through multiple levels",
			start:  progression.State{Level: 1, Xp: 0, XpToNextLevel: 50},
			amount: 130,
			want:   progression.State{Level: 3, Xp: 5, XpToNextLevel: 112},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := progression.Gain(tc.start, tc.amount)
			if got != tc.want {
				t.Errorf("Gain(%+v, %d) = %+v, want %+v", tc.start, tc.amount, got, tc.want)
			}
		})
	}
}

func TestGainInvariant(t *testing.T) {
	s := progression.NewState()
	for i := 0; i < 500; i++ {
		prevLevel := s.Level
		s = progression.Gain(s, progression.XpPerMessage)

		if s.Xp >= s.XpToNextLevel {
			t.Fatalf("After %d messages xp %d >= threshold %d", i+1, s.Xp, s.XpToNextLevel)
		}
		if s.Xp < 0 {
			t.Fatalf("After %d messages xp went negative: %d", i+1, s.Xp)
		}
		if s.Level < prevLevel {
			t.Fatalf("Level decreased from %d to %d", prevLevel, s.Level)
		}
	}
}
