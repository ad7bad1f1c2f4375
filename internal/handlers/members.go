package handlers

import (
	"chatverse-backend/internal/hub"
	"chatverse-backend/internal/store"
	"encoding/json"
	"errors"
	"net/http"
)

const leaderboardSize = 3

func GetMemberList(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	serverID, err := parseSnowflakeParam(r, "serverID")
	if err != nil {
		http.Error(w, "Invalid server ID", http.StatusBadRequest)
		return
	}

	isMember, err := st.IsMember(serverID, userID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	if !isMember {
		http.Error(w, "You aren't a member of this server", http.StatusForbidden)
		return
	}

	members, err := st.Members(serverID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(members)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	serverID, err := parseSnowflakeParam(r, "serverID")
	if err != nil {
		http.Error(w, "Invalid server ID", http.StatusBadRequest)
		return
	}

	isMember, err := st.IsMember(serverID, userID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	if !isMember {
		http.Error(w, "You aren't a member of this server", http.StatusForbidden)
		return
	}

	leaders, err := st.Leaderboard(serverID, leaderboardSize)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(leaders)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func KickMember(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	serverID, err := parseSnowflakeParam(r, "serverID")
	if err != nil {
		http.Error(w, "Invalid server ID", http.StatusBadRequest)
		return
	}

	targetID, err := parseSnowflakeParam(r, "userID")
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	if !requireOwner(userID, serverID, w) {
		return
	}

	if targetID == userID {
		http.Error(w, "You can't kick yourself", http.StatusBadRequest)
		return
	}

	err = st.KickMember(serverID, targetID)
	if err != nil {
		sugar.Debug(err)
		if errors.Is(err, store.ErrNotMember) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	type KickedMember struct {
		ServerID int64 `json:"serverID,string"`
		UserID   int64 `json:"userID,string"`
	}

	err = hub.Emit(hub.MemberKicked, hub.ChannelTypeServer, KickedMember{ServerID: serverID, UserID: targetID}, serverID)
	if err != nil {
		sugar.Error(err)
	}
}
