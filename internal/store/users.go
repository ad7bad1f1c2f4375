package store

import (
	"chatverse-backend/internal/avatar"
	"chatverse-backend/internal/models"
	"chatverse-backend/internal/progression"
	"chatverse-backend/internal/snowflake"
)

// CreateUser registers a new user with the starting progression block. The
// duplicate check is an exact byte-for-byte name match.
func (s *Store) CreateUser(name string, passwordHash []byte) (models.User, error) {
	var user models.User

	var taken bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE name = ?)", name).Scan(&taken)
	if err != nil {
		return user, err
	}
	if taken {
		return user, ErrUsernameTaken
	}

	userID, err := snowflake.Generate()
	if err != nil {
		return user, err
	}

	start := progression.NewState()

	user = models.User{
		ID:            userID,
		Name:          name,
		AvatarUrl:     avatar.UserUrl(name),
		Status:        models.StatusOnline,
		Level:         start.Level,
		Xp:            start.Xp,
		XpToNextLevel: start.XpToNextLevel,
		Password:      passwordHash,
	}

	_, err = s.db.Exec("INSERT INTO users VALUES(?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.AvatarUrl, user.Status, user.Level, user.Xp, user.XpToNextLevel, user.Password)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (s *Store) UserByName(name string) (models.User, error) {
	var user models.User
	err := s.db.QueryRow("SELECT id, name, avatar_url, status, level, xp, xp_to_next_level, password FROM users WHERE name = ?", name).
		Scan(&user.ID, &user.Name, &user.AvatarUrl, &user.Status, &user.Level, &user.Xp, &user.XpToNextLevel, &user.Password)
	return user, err
}

func (s *Store) UserByID(userID int64) (models.User, error) {
	var user models.User
	err := s.db.QueryRow("SELECT id, name, avatar_url, status, level, xp, xp_to_next_level, password FROM users WHERE id = ?", userID).
		Scan(&user.ID, &user.Name, &user.AvatarUrl, &user.Status, &user.Level, &user.Xp, &user.XpToNextLevel, &user.Password)
	return user, err
}

func (s *Store) UserExists(userID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", userID).Scan(&exists)
	return exists, err
}

func (s *Store) SetStatus(userID int64, status string) error {
	_, err := s.db.Exec("UPDATE users SET status = ? WHERE id = ?", status, userID)
	return err
}

// XpHistory returns the bounded recent-gain log, most recent first.
func (s *Store) XpHistory(userID int64) ([]models.XpEvent, error) {
	rows, err := s.db.Query("SELECT id, reason, amount FROM xp_events WHERE user_id = ? ORDER BY id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.XpEvent{}
	for rows.Next() {
		var event models.XpEvent
		var eventID int64

		err := rows.Scan(&eventID, &event.Reason, &event.Amount)
		if err != nil {
			return nil, err
		}

		event.Timestamp = snowflake.ExtractTime(eventID).UTC().Format("15:04")
		events = append(events, event)
	}

	return events, rows.Err()
}

func (s *Store) Badges(userID int64) ([]models.Badge, error) {
	rows, err := s.db.Query("SELECT badge_id FROM user_badges WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	badges := []models.Badge{}
	for rows.Next() {
		var badgeID string
		err := rows.Scan(&badgeID)
		if err != nil {
			return nil, err
		}

		badge, known := badgeCatalog[badgeID]
		if !known {
			continue
		}
		badges = append(badges, badge)
	}

	return badges, rows.Err()
}

// ServerIDs lists the servers a user belongs to, derived from the membership
// relation rather than kept as a second copy on the user record.
func (s *Store) ServerIDs(userID int64) ([]int64, error) {
	rows, err := s.db.Query("SELECT server_id FROM server_members WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	serverIDs := []int64{}
	for rows.Next() {
		var serverID int64
		err := rows.Scan(&serverID)
		if err != nil {
			return nil, err
		}
		serverIDs = append(serverIDs, serverID)
	}

	return serverIDs, rows.Err()
}
