// Package progression holds the XP and level arithmetic applied when a user
// sends a message. It is pure; persistence lives in the store.
package progression

const (
	XpPerMessage  int64 = 5
	BaseThreshold int64 = 50

	// HistoryLimit bounds how many recent XP events are kept per user.
	HistoryLimit = 5

	ReasonMessageSent = "message sent"
)

type State struct {
	Level         int64
	Xp            int64
	XpToNextLevel int64
}

// NewState is the progression block of a freshly registered user.
func NewState() State {
	return State{Level: 1, Xp: 0, XpToNextLevel: BaseThreshold}
}

// Gain applies an XP amount and rolls levels over until the invariant
// xp < xpToNextLevel holds again. Thresholds grow by floor(previous * 1.5),
// and a single large gain may cascade through several levels.
func Gain(s State, amount int64) State {
	s.Xp += amount
	for s.Xp >= s.XpToNextLevel {
		s.Level++
		s.Xp -= s.XpToNextLevel
		s.XpToNextLevel = s.XpToNextLevel * 3 / 2
	}
	return s
}
