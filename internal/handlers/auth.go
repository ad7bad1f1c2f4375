package handlers

import (
	"chatverse-backend/internal/jwt"
	"chatverse-backend/internal/models"
	"chatverse-backend/internal/snowflake"
	"chatverse-backend/internal/store"
	appValidator "chatverse-backend/internal/validator"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

func Register(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)

	type Registration struct {
		Name       string `validate:"required"`
		Password   string `validate:"required"`
		RememberMe bool
	}

	var registration Registration
	err := decoder.Decode(&registration)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	err = validate.Struct(registration)
	if err != nil {
		sugar.Debug(err)
		var registerErrors = make(map[string]string)
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			for _, e := range validateErrs {
				registerErrors[e.Field()] = e.Tag()
			}
		}

		w.WriteHeader(http.StatusBadRequest)

		encodeErr := json.NewEncoder(w).Encode(registerErrors)
		if encodeErr != nil {
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	err = appValidator.Username(registration.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = appValidator.Password(registration.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(registration.Password), 12)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	user, err := st.CreateUser(registration.Name, passwordBytes)
	if err != nil {
		sugar.Debug(err)
		if errors.Is(err, store.ErrUsernameTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
		} else {
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	cookie, err := jwt.CreateToken(registration.RememberMe, user.ID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &cookie)

	consumePendingInvite(user.ID, w, r)

	err = json.NewEncoder(w).Encode(user)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func Login(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)

	type LoginRequest struct {
		Name       string
		Password   string
		RememberMe bool
	}

	var login LoginRequest
	err := decoder.Decode(&login)
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	user, err := st.UserByName(login.Name)
	if err != nil {
		sugar.Debug(err)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "invalid_credentials", http.StatusUnauthorized)
		} else {
			http.Error(w, "", http.StatusInternalServerError)
		}
		return
	}

	err = bcrypt.CompareHashAndPassword(user.Password, []byte(login.Password))
	if err != nil {
		sugar.Debug(err)
		http.Error(w, "invalid_credentials", http.StatusUnauthorized)
		return
	}

	err = st.SetStatus(user.ID, models.StatusOnline)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	user.Status = models.StatusOnline

	cookie, err := jwt.CreateToken(login.RememberMe, user.ID)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &cookie)

	consumePendingInvite(user.ID, w, r)

	err = json.NewEncoder(w).Encode(user)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
}

func Logout(w http.ResponseWriter, r *http.Request) {
	userID := contextUserID(r)

	err := st.SetStatus(userID, models.StatusOffline)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	deleteCookie := jwt.DeleteCookie()
	http.SetCookie(w, &deleteCookie)
}

// NewSession hands out the session ID a client presents when connecting to
// websocket. One user can hold multiple sessions across tabs or devices.
func NewSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := snowflake.Generate()
	if err != nil {
		sugar.Error(err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	cookie := http.Cookie{
		Name:     "session",
		Value:    strconv.FormatInt(sessionID, 10),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, &cookie)
}
