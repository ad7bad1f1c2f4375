package handlers

import (
	"chatverse-backend/internal/hub"
	"encoding/json"
	"net/http"
)

func CreateChannel(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	serverID, err := parseSnowflakeParam(r, "serverID")
	if err != nil {
		http.Error(w, "Invalid server ID", http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Channel name can't be empty", http.StatusBadRequest)
		return
	}

	if !requireOwner(userID, serverID, w) {
		return
	}

	channel, err := st.CreateChannel(serverID, name)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = hub.Emit(hub.ChannelCreated, hub.ChannelTypeServer, channel, serverID)
	if err != nil {
		sugar.Error(err)
	}

	err = json.NewEncoder(w).Encode(channel)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

// GetChannelList also subscribes the session to the server's event feed, so
// opening a server is what starts its live updates.
func GetChannelList(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)
	sessionID := contextSessionID(r)

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

	err = hub.Subscribe(serverID, hub.ChannelTypeServer, sessionID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	channels, err := st.ChannelsByServer(serverID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(channels)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}
