package store

import (
	"chatverse-backend/internal/models"
	"database/sql"
)

// Join adds a user to a server under the newbie-tagged default role, or with
// no roles when the server has none. Runs in one transaction so the member
// row and its role row land together.
func (s *Store) Join(serverID int64, userID int64) error {
	return s.inTx(func(tx *sql.Tx) error {
		var isMember bool
		err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM server_members WHERE server_id = ? AND user_id = ?)", serverID, userID).Scan(&isMember)
		if err != nil {
			return err
		}
		if isMember {
			return ErrAlreadyMember
		}

		_, err = tx.Exec("INSERT INTO server_members (server_id, user_id) VALUES(?, ?)", serverID, userID)
		if err != nil {
			return err
		}

		var newbieRoleID int64
		err = tx.QueryRow("SELECT id FROM roles WHERE server_id = ? AND tag = ?", serverID, models.RoleTagNewbie).Scan(&newbieRoleID)
		if err == sql.ErrNoRows {
			return nil
		} else if err != nil {
			return err
		}

		_, err = tx.Exec("INSERT INTO member_roles VALUES(?, ?, ?)", serverID, userID, newbieRoleID)
		return err
	})
}

// KickMember removes the membership relation. Role rows go with it, and the
// user's server list shrinks automatically since it is derived from the same
// relation.
func (s *Store) KickMember(serverID int64, userID int64) error {
	return s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec("DELETE FROM member_roles WHERE server_id = ? AND user_id = ?", serverID, userID)
		if err != nil {
			return err
		}

		result, err := tx.Exec("DELETE FROM server_members WHERE server_id = ? AND user_id = ?", serverID, userID)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotMember
		}

		return nil
	})
}

func (s *Store) IsMember(serverID int64, userID int64) (bool, error) {
	var isMember bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM server_members WHERE server_id = ? AND user_id = ?)", serverID, userID).Scan(&isMember)
	return isMember, err
}

func (s *Store) MemberCount(serverID int64) (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM server_members WHERE server_id = ?", serverID).Scan(&count)
	return count, err
}

// Members resolves each membership row against the users table at read time.
func (s *Store) Members(serverID int64) ([]models.ServerMember, error) {
	rows, err := s.db.Query(`
		SELECT
			users.id,
			users.name,
			users.avatar_url,
			users.status,
			users.level,
			users.xp,
			users.xp_to_next_level
		FROM
			server_members
		JOIN
			users ON server_members.user_id = users.id
		WHERE
			server_members.server_id = ?
		`, serverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.ServerMember{}
	for rows.Next() {
		var member models.ServerMember
		err := rows.Scan(&member.User.ID, &member.User.Name, &member.User.AvatarUrl, &member.User.Status,
			&member.User.Level, &member.User.Xp, &member.User.XpToNextLevel)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range members {
		roles, err := s.memberRoles(serverID, members[i].User.ID)
		if err != nil {
			return nil, err
		}
		members[i].Roles = roles
	}

	return members, nil
}

// Member resolves a single membership row, ErrNotMember when the user isn't
// in the server.
func (s *Store) Member(serverID int64, userID int64) (models.ServerMember, error) {
	var member models.ServerMember

	err := s.db.QueryRow(`
		SELECT
			users.id,
			users.name,
			users.avatar_url,
			users.status,
			users.level,
			users.xp,
			users.xp_to_next_level
		FROM
			server_members
		JOIN
			users ON server_members.user_id = users.id
		WHERE
			server_members.server_id = ? AND server_members.user_id = ?
		`, serverID, userID).
		Scan(&member.User.ID, &member.User.Name, &member.User.AvatarUrl, &member.User.Status,
			&member.User.Level, &member.User.Xp, &member.User.XpToNextLevel)
	if err == sql.ErrNoRows {
		return member, ErrNotMember
	} else if err != nil {
		return member, err
	}

	roles, err := s.memberRoles(serverID, userID)
	if err != nil {
		return member, err
	}
	member.Roles = roles

	return member, nil
}

func (s *Store) memberRoles(serverID int64, userID int64) ([]models.Role, error) {
	rows, err := s.db.Query(`
		SELECT roles.* FROM member_roles
		JOIN roles ON member_roles.role_id = roles.id
		WHERE member_roles.server_id = ? AND member_roles.user_id = ?
		`, serverID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

// ToggleRole attaches the role if the member doesn't hold it and removes it
// if they do. A role ID that doesn't belong to the server is a no-op.
func (s *Store) ToggleRole(serverID int64, userID int64, roleID int64) error {
	return s.inTx(func(tx *sql.Tx) error {
		var roleExists bool
		err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM roles WHERE id = ? AND server_id = ?)", roleID, serverID).Scan(&roleExists)
		if err != nil {
			return err
		}
		if !roleExists {
			return nil
		}

		var isMember bool
		err = tx.QueryRow("SELECT EXISTS(SELECT 1 FROM server_members WHERE server_id = ? AND user_id = ?)", serverID, userID).Scan(&isMember)
		if err != nil {
			return err
		}
		if !isMember {
			return ErrNotMember
		}

		var hasRole bool
		err = tx.QueryRow("SELECT EXISTS(SELECT 1 FROM member_roles WHERE server_id = ? AND user_id = ? AND role_id = ?)", serverID, userID, roleID).Scan(&hasRole)
		if err != nil {
			return err
		}

		if hasRole {
			_, err = tx.Exec("DELETE FROM member_roles WHERE server_id = ? AND user_id = ? AND role_id = ?", serverID, userID, roleID)
		} else {
			_, err = tx.Exec("INSERT INTO member_roles VALUES(?, ?, ?)", serverID, userID, roleID)
		}
		return err
	})
}

// Leaderboard ranks members by level, then XP within a level.
func (s *Store) Leaderboard(serverID int64, limit int64) ([]models.ServerMember, error) {
	rows, err := s.db.Query(`
		SELECT
			users.id,
			users.name,
			users.avatar_url,
			users.status,
			users.level,
			users.xp,
			users.xp_to_next_level
		FROM
			server_members
		JOIN
			users ON server_members.user_id = users.id
		WHERE
			server_members.server_id = ?
		ORDER BY
			users.level DESC, users.xp DESC
		LIMIT ?
		`, serverID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.ServerMember{}
	for rows.Next() {
		var member models.ServerMember
		err := rows.Scan(&member.User.ID, &member.User.Name, &member.User.AvatarUrl, &member.User.Status,
			&member.User.Level, &member.User.Xp, &member.User.XpToNextLevel)
		if err != nil {
			return nil, err
		}
		member.Roles = []models.Role{}
		members = append(members, member)
	}

	return members, rows.Err()
}
