package handlers

import (
	"chatverse-backend/internal/hub"
	"chatverse-backend/internal/invite"
	"chatverse-backend/internal/keyValue"
	"chatverse-backend/internal/models"
	"chatverse-backend/internal/store"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const pendingInviteCookie = "pendingInvite"
const pendingInviteLifetime = 10 * time.Minute

// StashPendingInvite parks an invite code for a visitor who isn't logged in
// yet. The code is stored server side under a random token and consumed on
// the next successful login or registration.
func StashPendingInvite(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)

	type PendingInvite struct {
		Invite string
	}

	var pending PendingInvite
	err := decoder.Decode(&pending)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	code := invite.ExtractCode(pending.Invite)
	if code == "" {
		http.Error(w, "invalid_invite", http.StatusBadRequest)
		return
	}

	token := uuid.NewString()

	err = keyValue.Set(fmt.Sprintf("pending_invite:%s", token), code, pendingInviteLifetime)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	cookie := http.Cookie{
		Name:     pendingInviteCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, &cookie)
}

// consumePendingInvite joins the freshly authenticated user into the server
// behind their stashed invite, if any. The key/value read deletes the entry,
// so a second login can't replay the same invite.
func consumePendingInvite(userID int64, w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(pendingInviteCookie)
	if err != nil {
		return
	}

	deleteCookie := http.Cookie{
		Name:    pendingInviteCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
	}
	http.SetCookie(w, &deleteCookie)

	code, err := keyValue.GetDel(fmt.Sprintf("pending_invite:%s", cookie.Value))
	if err != nil {
		sugar.Error(err)
		return
	}
	if code == "" {
		return
	}

	_, err = joinByCode(code, userID)
	if err != nil {
		sugar.Debugf("Pending invite [%s] for user ID [%d] wasn't consumable: %s", code, userID, err)
	}
}

func joinByCode(code string, userID int64) (models.Server, error) {
	server, err := st.ServerByInviteCode(code)
	if err != nil {
		return models.Server{}, err
	}

	err = st.Join(server.ID, userID)
	if err != nil {
		return models.Server{}, err
	}

	member, err := st.Member(server.ID, userID)
	if err != nil {
		return models.Server{}, err
	}

	err = hub.Emit(hub.MemberJoined, hub.ChannelTypeServer, member, server.ID)
	if err != nil {
		sugar.Error(err)
	}

	return server, nil
}

func JoinServer(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	decoder := json.NewDecoder(r.Body)

	type JoinRequest struct {
		Invite string
	}

	var join JoinRequest
	err := decoder.Decode(&join)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	code := invite.ExtractCode(join.Invite)
	if code == "" {
		http.Error(w, "invalid_invite", http.StatusBadRequest)
		return
	}

	server, err := joinByCode(code, userID)
	if err != nil {
		sugar.Debug(err)
		switch {
		case errors.Is(err, store.ErrUnknownInvite):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, store.ErrAlreadyMember):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	err = json.NewEncoder(w).Encode(server)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}
