package handlers

import (
	"chatverse-backend/internal/hub"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
)

const maxMessageLength = 2000

func CreateMessage(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	decoder := json.NewDecoder(r.Body)

	type NewMessage struct {
		ChannelID int64  `json:"channelID,string"`
		Content   string `json:"content"`
	}

	var newMessage NewMessage
	err := decoder.Decode(&newMessage)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	if newMessage.Content == "" {
		http.Error(w, "Message can't be empty", http.StatusBadRequest)
		return
	}
	if len(newMessage.Content) > maxMessageLength {
		http.Error(w, "Message is too long", http.StatusBadRequest)
		return
	}

	channel, err := st.ChannelByID(newMessage.ChannelID)
	if err != nil {
		sugar.Debug(err)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Channel doesn't exist", http.StatusNotFound)
		} else {
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	isMember, err := st.IsMember(channel.ServerID, userID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	if !isMember {
		http.Error(w, "You aren't a member of this server", http.StatusForbidden)
		return
	}

	message, levelledUp, err := st.CreateMessage(channel.ID, userID, newMessage.Content)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = hub.Emit(hub.MessageCreated, hub.ChannelTypeChannel, message, channel.ID)
	if err != nil {
		sugar.Error(err)
	}

	// a level up changes the author's row on every member list showing them
	if levelledUp {
		member, err := st.Member(channel.ServerID, userID)
		if err != nil {
			sugar.Error(err)
		} else {
			err = hub.Emit(hub.MemberModified, hub.ChannelTypeServer, member, channel.ServerID)
			if err != nil {
				sugar.Error(err)
			}
		}
	}

	err = json.NewEncoder(w).Encode(message)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

// GetMessageList also points the session's channel subscription at the
// fetched channel, so new messages stream in where the user is looking.
func GetMessageList(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)
	sessionID := contextSessionID(r)

	channelID, err := parseSnowflakeParam(r, "channelID")
	if err != nil {
		http.Error(w, "Invalid channel ID", http.StatusBadRequest)
		return
	}

	channel, err := st.ChannelByID(channelID)
	if err != nil {
		sugar.Debug(err)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Channel doesn't exist", http.StatusNotFound)
		} else {
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	isMember, err := st.IsMember(channel.ServerID, userID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	if !isMember {
		http.Error(w, "You aren't a member of this server", http.StatusForbidden)
		return
	}

	err = hub.Subscribe(channelID, hub.ChannelTypeChannel, sessionID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	messages, err := st.MessagesByChannel(channelID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(messages)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}
