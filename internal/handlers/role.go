package handlers

import (
	"chatverse-backend/internal/hub"
	"chatverse-backend/internal/store"
	"encoding/json"
	"errors"
	"net/http"
)

func CreateRole(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	serverID, err := parseSnowflakeParam(r, "serverID")
	if err != nil {
		http.Error(w, "Invalid server ID", http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Role name can't be empty", http.StatusBadRequest)
		return
	}

	if !requireOwner(userID, serverID, w) {
		return
	}

	role, err := st.CreateRole(serverID, name)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = hub.Emit(hub.RoleCreated, hub.ChannelTypeServer, role, serverID)
	if err != nil {
		sugar.Error(err)
	}

	err = json.NewEncoder(w).Encode(role)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func GetRoleList(w http.ResponseWriter, r *http.Request) {
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

	roles, err := st.RolesByServer(serverID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(roles)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

// ToggleRole assigns the role if the member doesn't hold it and removes it
// if they do. Toggling a role that doesn't exist on the server succeeds
// without changing anything.
func ToggleRole(w http.ResponseWriter, r *http.Request) {
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

	roleID, err := parseSnowflakeParam(r, "roleID")
	if err != nil {
		http.Error(w, "Invalid role ID", http.StatusBadRequest)
		return
	}

	if !requireOwner(userID, serverID, w) {
		return
	}

	err = st.ToggleRole(serverID, targetID, roleID)
	if err != nil {
		sugar.Debug(err)
		if errors.Is(err, store.ErrNotMember) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	member, err := st.Member(serverID, targetID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = hub.Emit(hub.MemberModified, hub.ChannelTypeServer, member, serverID)
	if err != nil {
		sugar.Error(err)
	}

	err = json.NewEncoder(w).Encode(member)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}
