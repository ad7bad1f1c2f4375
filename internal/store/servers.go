package store

import (
	"chatverse-backend/internal/avatar"
	"chatverse-backend/internal/invite"
	"chatverse-backend/internal/models"
	"chatverse-backend/internal/snowflake"
	"database/sql"
	"encoding/json"
	"fmt"
)

// inviteCodeAttempts bounds the uniqueness retry loop. The code space holds
// 36^6 values, so a second draw is already rare.
const inviteCodeAttempts = 10

func (s *Store) uniqueInviteCode() (string, error) {
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code := invite.GenerateCode()

		var taken bool
		err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM servers WHERE invite_code = ?)", code).Scan(&taken)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}

	return "", fmt.Errorf("no unique invite code after %d attempts", inviteCodeAttempts)
}

// CreateServer sets up a server with its default roles and channel and joins
// the owner under the admin role, all in one transaction.
func (s *Store) CreateServer(ownerID int64, name string) (models.Server, error) {
	var server models.Server

	serverID, err := snowflake.Generate()
	if err != nil {
		return server, err
	}

	inviteCode, err := s.uniqueInviteCode()
	if err != nil {
		return server, err
	}

	server = models.Server{
		ID:         serverID,
		OwnerID:    ownerID,
		InviteCode: inviteCode,
		Name:       name,
		ImageUrl:   avatar.ServerUrl(serverID),
		Theme:      models.ThemeCyan,
	}

	adminRole := models.Role{
		ServerID:    serverID,
		Name:        "Admin",
		Color:       "bg-red-500",
		Icon:        "👑",
		Tag:         models.RoleTagAdmin,
		Permissions: []string{"*"},
	}
	newbieRole := models.Role{
		ServerID:    serverID,
		Name:        "Newbie",
		Color:       "bg-gray-500",
		Icon:        "🔰",
		Tag:         models.RoleTagNewbie,
		Permissions: []string{},
	}

	channelID, err := snowflake.Generate()
	if err != nil {
		return models.Server{}, err
	}

	err = s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO servers VALUES(?, ?, ?, ?, ?, ?)",
			server.ID, server.OwnerID, server.InviteCode, server.Name, server.ImageUrl, server.Theme)
		if err != nil {
			return err
		}

		for _, role := range []*models.Role{&adminRole, &newbieRole} {
			err = insertRole(tx, role)
			if err != nil {
				return err
			}
		}

		_, err = tx.Exec("INSERT INTO channels VALUES(?, ?, ?)", channelID, serverID, "general")
		if err != nil {
			return err
		}

		_, err = tx.Exec("INSERT INTO server_members (server_id, user_id) VALUES(?, ?)", serverID, ownerID)
		if err != nil {
			return err
		}

		_, err = tx.Exec("INSERT INTO member_roles VALUES(?, ?, ?)", serverID, ownerID, adminRole.ID)
		return err
	})
	if err != nil {
		return models.Server{}, err
	}

	return server, nil
}

func insertRole(tx *sql.Tx, role *models.Role) error {
	roleID, err := snowflake.Generate()
	if err != nil {
		return err
	}
	role.ID = roleID

	permissions, err := json.Marshal(role.Permissions)
	if err != nil {
		return err
	}

	_, err = tx.Exec("INSERT INTO roles VALUES(?, ?, ?, ?, ?, ?, ?)",
		role.ID, role.ServerID, role.Name, role.Color, role.Icon, role.Tag, permissions)
	return err
}

func scanServer(row interface{ Scan(...any) error }) (models.Server, error) {
	var server models.Server
	err := row.Scan(&server.ID, &server.OwnerID, &server.InviteCode, &server.Name, &server.ImageUrl, &server.Theme)
	return server, err
}

// ServerByInviteCode resolves an invite code to its server, ErrUnknownInvite
// when nothing matches.
func (s *Store) ServerByInviteCode(code string) (models.Server, error) {
	server, err := scanServer(s.db.QueryRow("SELECT * FROM servers WHERE invite_code = ?", code))
	if err == sql.ErrNoRows {
		return server, ErrUnknownInvite
	}
	return server, err
}

func (s *Store) ServerByID(serverID int64) (models.Server, error) {
	return scanServer(s.db.QueryRow("SELECT * FROM servers WHERE id = ?", serverID))
}

func (s *Store) ServersByUser(userID int64) ([]models.Server, error) {
	rows, err := s.db.Query("SELECT s.* FROM servers s JOIN server_members m ON s.id = m.server_id WHERE m.user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	servers := []models.Server{}
	for rows.Next() {
		server, err := scanServer(rows)
		if err != nil {
			return nil, err
		}
		servers = append(servers, server)
	}

	return servers, rows.Err()
}

func (s *Store) IsServerOwner(userID int64, serverID int64) (bool, error) {
	var ownsServer bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM servers WHERE id = ? AND owner_id = ?)", serverID, userID).Scan(&ownsServer)
	return ownsServer, err
}

func (s *Store) RenameServer(serverID int64, name string) error {
	_, err := s.db.Exec("UPDATE servers SET name = ? WHERE id = ?", name, serverID)
	return err
}

func (s *Store) SetTheme(serverID int64, theme string) error {
	switch theme {
	case models.ThemeCyan, models.ThemeMagenta, models.ThemeLime:
	default:
		return ErrUnknownTheme
	}

	_, err := s.db.Exec("UPDATE servers SET theme = ? WHERE id = ?", theme, serverID)
	return err
}

func (s *Store) CreateChannel(serverID int64, name string) (models.Channel, error) {
	channelID, err := snowflake.Generate()
	if err != nil {
		return models.Channel{}, err
	}

	channel := models.Channel{
		ID:       channelID,
		ServerID: serverID,
		Name:     name,
	}

	_, err = s.db.Exec("INSERT INTO channels VALUES(?, ?, ?)", channel.ID, channel.ServerID, channel.Name)
	if err != nil {
		return models.Channel{}, err
	}

	return channel, nil
}

func (s *Store) ChannelsByServer(serverID int64) ([]models.Channel, error) {
	rows, err := s.db.Query("SELECT * FROM channels WHERE server_id = ?", serverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := []models.Channel{}
	for rows.Next() {
		var channel models.Channel
		err := rows.Scan(&channel.ID, &channel.ServerID, &channel.Name)
		if err != nil {
			return nil, err
		}
		channels = append(channels, channel)
	}

	return channels, rows.Err()
}

func (s *Store) ChannelByID(channelID int64) (models.Channel, error) {
	var channel models.Channel
	err := s.db.QueryRow("SELECT * FROM channels WHERE id = ?", channelID).
		Scan(&channel.ID, &channel.ServerID, &channel.Name)
	return channel, err
}

// CreateRole appends a role with the system default color and icon and no
// permissions, matching what the settings dialog offers.
func (s *Store) CreateRole(serverID int64, name string) (models.Role, error) {
	role := models.Role{
		ServerID:    serverID,
		Name:        name,
		Color:       "bg-gray-400",
		Icon:        "▫️",
		Permissions: []string{},
	}

	err := s.inTx(func(tx *sql.Tx) error {
		return insertRole(tx, &role)
	})
	if err != nil {
		return models.Role{}, err
	}

	return role, nil
}

func (s *Store) RolesByServer(serverID int64) ([]models.Role, error) {
	rows, err := s.db.Query("SELECT * FROM roles WHERE server_id = ?", serverID)
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

func scanRole(row interface{ Scan(...any) error }) (models.Role, error) {
	var role models.Role
	var permissions []byte

	err := row.Scan(&role.ID, &role.ServerID, &role.Name, &role.Color, &role.Icon, &role.Tag, &permissions)
	if err != nil {
		return role, err
	}

	err = json.Unmarshal(permissions, &role.Permissions)
	return role, err
}
