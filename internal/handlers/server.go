package handlers

import (
	"chatverse-backend/internal/hub"
	"chatverse-backend/internal/store"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

func parseSnowflakeParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
}

// requireOwner answers whether the request may administer the server,
// writing the error response itself when it may not.
func requireOwner(userID int64, serverID int64, w http.ResponseWriter) bool {
	ownsServer, err := st.IsServerOwner(userID, serverID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return false
	}
	if !ownsServer {
		http.Error(w, "You don't own this server", http.StatusForbidden)
		return false
	}
	return true
}

func CreateServer(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	serverName := r.URL.Query().Get("name")
	if serverName == "" {
		serverName = "My server"
	}

	server, err := st.CreateServer(userID, serverName)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(server)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func GetServerList(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)
	sessionID := contextSessionID(r)

	servers, err := st.ServersByUser(userID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	for _, server := range servers {
		err = hub.Subscribe(server.ID, hub.ChannelTypeServerList, sessionID)
		if err != nil {
			sugar.Error(err)
			http.Error(w, "", http.StatusInternalServerError)
			return
		}
	}

	err = json.NewEncoder(w).Encode(servers)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func RenameServer(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	serverID, err := parseSnowflakeParam(r, "serverID")
	if err != nil {
		http.Error(w, "Invalid server ID", http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Server name can't be empty", http.StatusBadRequest)
		return
	}

	if !requireOwner(userID, serverID, w) {
		return
	}

	err = st.RenameServer(serverID, name)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	emitServerModified(serverID)
}

func SetServerTheme(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	serverID, err := parseSnowflakeParam(r, "serverID")
	if err != nil {
		http.Error(w, "Invalid server ID", http.StatusBadRequest)
		return
	}

	if !requireOwner(userID, serverID, w) {
		return
	}

	err = st.SetTheme(serverID, r.URL.Query().Get("theme"))
	if err != nil {
		sugar.Debug(err)
		if errors.Is(err, store.ErrUnknownTheme) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	emitServerModified(serverID)
}

// emitServerModified pushes the updated server record to members currently
// looking at the server and to everyone's server list.
func emitServerModified(serverID int64) {
	server, err := st.ServerByID(serverID)
	if err != nil {
		sugar.Error(err)
		return
	}

	err = hub.Emit(hub.ServerModified, hub.ChannelTypeServer, server, serverID)
	if err != nil {
		sugar.Error(err)
	}

	err = hub.Emit(hub.ServerModified, hub.ChannelTypeServerList, server, serverID)
	if err != nil {
		sugar.Error(err)
	}
}
