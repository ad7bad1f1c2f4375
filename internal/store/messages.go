package store

import (
	"chatverse-backend/internal/models"
	"chatverse-backend/internal/progression"
	"chatverse-backend/internal/snowflake"
	"database/sql"
)

const timestampLayout = "15:04"

// CreateMessage appends a message and applies the author's XP gain in the
// same transaction: the message, the progression update, the history entry
// and its pruning land or fail together. Returns the stored message with the
// author resolved and whether the author levelled up.
func (s *Store) CreateMessage(channelID int64, userID int64, content string) (models.Message, bool, error) {
	messageID, err := snowflake.Generate()
	if err != nil {
		return models.Message{}, false, err
	}

	eventID, err := snowflake.Generate()
	if err != nil {
		return models.Message{}, false, err
	}

	msg := models.Message{
		ID:        messageID,
		ChannelID: channelID,
		UserID:    userID,
		Content:   content,
		Timestamp: snowflake.ExtractTime(messageID).UTC().Format(timestampLayout),
	}

	var levelledUp bool

	err = s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO messages VALUES(?, ?, ?, ?)", msg.ID, msg.ChannelID, msg.UserID, msg.Content)
		if err != nil {
			return err
		}

		var state progression.State
		err = tx.QueryRow("SELECT level, xp, xp_to_next_level FROM users WHERE id = ?", userID).
			Scan(&state.Level, &state.Xp, &state.XpToNextLevel)
		if err != nil {
			return err
		}

		next := progression.Gain(state, progression.XpPerMessage)
		levelledUp = next.Level > state.Level

		_, err = tx.Exec("UPDATE users SET level = ?, xp = ?, xp_to_next_level = ? WHERE id = ?",
			next.Level, next.Xp, next.XpToNextLevel, userID)
		if err != nil {
			return err
		}

		_, err = tx.Exec("INSERT INTO xp_events VALUES(?, ?, ?, ?)",
			eventID, userID, progression.ReasonMessageSent, progression.XpPerMessage)
		if err != nil {
			return err
		}

		// keep only the most recent entries
		_, err = tx.Exec(`
			DELETE FROM xp_events WHERE user_id = ? AND id NOT IN (
				SELECT id FROM (
					SELECT id FROM xp_events WHERE user_id = ? ORDER BY id DESC LIMIT ?
				) AS recent
			)`, userID, userID, progression.HistoryLimit)
		if err != nil {
			return err
		}

		return s.awardMessageBadge(tx, userID)
	})
	if err != nil {
		return models.Message{}, false, err
	}

	err = s.db.QueryRow("SELECT id, name, avatar_url, status, level, xp, xp_to_next_level FROM users WHERE id = ?", userID).
		Scan(&msg.Author.ID, &msg.Author.Name, &msg.Author.AvatarUrl, &msg.Author.Status,
			&msg.Author.Level, &msg.Author.Xp, &msg.Author.XpToNextLevel)
	if err != nil {
		return models.Message{}, false, err
	}

	return msg, levelledUp, nil
}

func (s *Store) awardMessageBadge(tx *sql.Tx, userID int64) error {
	var count int64
	err := tx.QueryRow("SELECT COUNT(*) FROM messages WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return err
	}
	if count < badgeMsg100Threshold {
		return nil
	}

	var awarded bool
	err = tx.QueryRow("SELECT EXISTS(SELECT 1 FROM user_badges WHERE user_id = ? AND badge_id = ?)", userID, BadgeMsg100).Scan(&awarded)
	if err != nil {
		return err
	}
	if awarded {
		return nil
	}

	_, err = tx.Exec("INSERT INTO user_badges VALUES(?, ?)", userID, BadgeMsg100)
	return err
}

// MessagesByChannel returns the channel history in append order with authors
// resolved at read time.
func (s *Store) MessagesByChannel(channelID int64) ([]models.Message, error) {
	rows, err := s.db.Query(`
		SELECT
			messages.id,
			messages.channel_id,
			messages.user_id,
			messages.content,
			users.name,
			users.avatar_url,
			users.status,
			users.level
		FROM
			messages
		JOIN
			users ON messages.user_id = users.id
		WHERE
			messages.channel_id = ?
		ORDER BY
			messages.id ASC
		`, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		err := rows.Scan(&msg.ID, &msg.ChannelID, &msg.UserID, &msg.Content,
			&msg.Author.Name, &msg.Author.AvatarUrl, &msg.Author.Status, &msg.Author.Level)
		if err != nil {
			return nil, err
		}

		msg.Author.ID = msg.UserID
		msg.Timestamp = snowflake.ExtractTime(msg.ID).UTC().Format(timestampLayout)
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
