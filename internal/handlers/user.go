package handlers

import (
	"chatverse-backend/internal/models"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

// GetUserInfo returns the full profile card: the user record, the servers
// they belong to, their recent XP gains and earned badges. Without a userID
// parameter it describes the caller.
func GetUserInfo(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	if param := r.URL.Query().Get("userID"); param != "" {
		parsed, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}
		userID = parsed
	}

	user, err := st.UserByID(userID)
	if err != nil {
		sugar.Debug(err)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "User doesn't exist", http.StatusNotFound)
		} else {
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	serverIDs, err := st.ServerIDs(userID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	history, err := st.XpHistory(userID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	badges, err := st.Badges(userID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	serverIDStrings := make([]string, 0, len(serverIDs))
	for _, serverID := range serverIDs {
		serverIDStrings = append(serverIDStrings, strconv.FormatInt(serverID, 10))
	}

	type Profile struct {
		User      models.User      `json:"user"`
		ServerIDs []string         `json:"serverIDs"`
		XpHistory []models.XpEvent `json:"xpHistory"`
		Badges    []models.Badge   `json:"badges"`
	}

	err = json.NewEncoder(w).Encode(Profile{
		User:      user,
		ServerIDs: serverIDStrings,
		XpHistory: history,
		Badges:    badges,
	})
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}
