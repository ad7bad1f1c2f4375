package store_test

import (
	"chatverse-backend/internal/models"
	"chatverse-backend/internal/progression"
	"chatverse-backend/internal/store"
	"math"
	"testing"
)

func setupChannel(t *testing.T, s *store.Store) (models.User, models.Channel) {
	t.Helper()

	owner := mustCreateUser(t, s, "Ada")
	server := mustCreateServer(t, s, owner.ID, "Synthwave")

	channels, err := s.ChannelsByServer(server.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(channels) == 0 {
		t.Fatal("Server has no channels")
	}

	return owner, channels[0]
}

func TestCreateMessage(t *testing.T) {
	s, _ := testStore(t)
	author, channel := setupChannel(t, s)

	msg, levelledUp, err := s.CreateMessage(channel.ID, author.ID, "hello there")
	if err != nil {
		t.Fatal(err)
	}
	if levelledUp {
		t.Error("First message reported a level up")
	}
	if msg.Content != "hello there" {
		t.Errorf("Message content = %q, want %q", msg.Content, "hello there")
	}
	if msg.Author.ID != author.ID || msg.Author.Name != author.Name {
		t.Errorf("Message author = %+v, want user %d %q", msg.Author, author.ID, author.Name)
	}
	if msg.Timestamp == "" {
		t.Error("Message has no timestamp")
	}

	messages, err := s.MessagesByChannel(channel.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 {
		t.Fatalf("Channel holds %d messages, want 1", len(messages))
	}
	if messages[0].ID != msg.ID {
		t.Errorf("Stored message ID %d, want %d", messages[0].ID, msg.ID)
	}

	user, err := s.UserByID(author.ID)
	if err != nil {
		t.Fatal(err)
	}
	if user.Xp != progression.XpPerMessage {
		t.Errorf("Author xp = %d after one message, want %d", user.Xp, progression.XpPerMessage)
	}
}

func TestCreateMessageLevelUp(t *testing.T) {
	s, db := testStore(t)
	author, channel := setupChannel(t, s)

	_, err := db.Exec("UPDATE users SET xp = 48 WHERE id = ?", author.ID)
	if err != nil {
		t.Fatal(err)
	}

	_, levelledUp, err := s.CreateMessage(channel.ID, author.ID, "ding")
	if err != nil {
		t.Fatal(err)
	}
	if !levelledUp {
		t.Error("Expected a level up at 48+5 xp against a threshold of 50")
	}

	user, err := s.UserByID(author.ID)
	if err != nil {
		t.Fatal(err)
	}
	if user.Level != 2 || user.Xp != 3 || user.XpToNextLevel != 75 {
		t.Errorf("After level up: level %d, xp %d, threshold %d; want 2, 3, 75",
			user.Level, user.Xp, user.XpToNextLevel)
	}
}

func TestXpInvariantOverManyMessages(t *testing.T) {
	s, _ := testStore(t)
	author, channel := setupChannel(t, s)

	prevLevel := int64(0)
	for i := 0; i < 50; i++ {
		_, _, err := s.CreateMessage(channel.ID, author.ID, "spam")
		if err != nil {
			t.Fatal(err)
		}

		user, err := s.UserByID(author.ID)
		if err != nil {
			t.Fatal(err)
		}
		if user.Xp >= user.XpToNextLevel {
			t.Fatalf("After %d messages xp %d >= threshold %d", i+1, user.Xp, user.XpToNextLevel)
		}
		if user.Level < prevLevel {
			t.Fatalf("Level decreased from %d to %d", prevLevel, user.Level)
		}
		prevLevel = user.Level
	}
}

func TestXpHistoryTruncation(t *testing.T) {
	s, _ := testStore(t)
	author, channel := setupChannel(t, s)

	for i := 0; i < 7; i++ {
		_, _, err := s.CreateMessage(channel.ID, author.ID, "hi")
		if err != nil {
			t.Fatal(err)
		}
	}

	history, err := s.XpHistory(author.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != progression.HistoryLimit {
		t.Fatalf("History holds %d events after 7 messages, want %d", len(history), progression.HistoryLimit)
	}
	for _, event := range history {
		if event.Reason != progression.ReasonMessageSent {
			t.Errorf("Event reason = %q, want %q", event.Reason, progression.ReasonMessageSent)
		}
		if event.Amount != progression.XpPerMessage {
			t.Errorf("Event amount = %d, want %d", event.Amount, progression.XpPerMessage)
		}
	}
}

func TestXpHistoryMostRecentFirst(t *testing.T) {
	s, db := testStore(t)
	author, channel := setupChannel(t, s)

	for i := 0; i < 3; i++ {
		_, _, err := s.CreateMessage(channel.ID, author.ID, "hi")
		if err != nil {
			t.Fatal(err)
		}
	}

	// plant recognizable events around the generated ones: IDs order the
	// history, so the largest ID must come back first and the smallest last
	newest := struct {
		id     int64
		amount int64
	}{math.MaxInt64, 99}
	oldest := struct {
		id     int64
		amount int64
	}{1, 42}

	for _, event := range []struct {
		id     int64
		amount int64
	}{newest, oldest} {
		_, err := db.Exec("INSERT INTO xp_events VALUES(?, ?, ?, ?)",
			event.id, author.ID, progression.ReasonMessageSent, event.amount)
		if err != nil {
			t.Fatal(err)
		}
	}

	history, err := s.XpHistory(author.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 5 {
		t.Fatalf("History holds %d events, want 5", len(history))
	}
	if history[0].Amount != newest.amount {
		t.Errorf("history[0].Amount = %d, want the newest event's %d", history[0].Amount, newest.amount)
	}
	if history[len(history)-1].Amount != oldest.amount {
		t.Errorf("history[%d].Amount = %d, want the oldest event's %d",
			len(history)-1, history[len(history)-1].Amount, oldest.amount)
	}
}

func TestMessageBadgeAward(t *testing.T) {
	s, _ := testStore(t)
	author, channel := setupChannel(t, s)

	for i := 0; i < 99; i++ {
		_, _, err := s.CreateMessage(channel.ID, author.ID, "grind")
		if err != nil {
			t.Fatal(err)
		}
	}

	badges, err := s.Badges(author.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(badges) != 0 {
		t.Fatalf("Badges after 99 messages = %v, want none", badges)
	}

	_, _, err = s.CreateMessage(channel.ID, author.ID, "century")
	if err != nil {
		t.Fatal(err)
	}

	badges, err = s.Badges(author.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(badges) != 1 || badges[0].ID != store.BadgeMsg100 {
		t.Errorf("Badges after 100 messages = %v, want the 100-message badge", badges)
	}
}

func TestMessagesByChannelOrder(t *testing.T) {
	s, _ := testStore(t)
	author, channel := setupChannel(t, s)

	contents := []string{"first", "second", "third"}
	for _, content := range contents {
		_, _, err := s.CreateMessage(channel.ID, author.ID, content)
		if err != nil {
			t.Fatal(err)
		}
	}

	messages, err := s.MessagesByChannel(channel.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != len(contents) {
		t.Fatalf("Channel holds %d messages, want %d", len(messages), len(contents))
	}
	for i, content := range contents {
		if messages[i].Content != content {
			t.Errorf("messages[%d].Content = %q, want %q", i, messages[i].Content, content)
		}
	}
}
