package handlers

import (
	"chatverse-backend/internal/hub"
	"chatverse-backend/internal/jwt"
	"chatverse-backend/internal/keyValue"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

type SessionIDKeyType struct{}
type UserIDKeyType struct{}

func AllowCors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SessionVerifier requires a live websocket session so fetch handlers can
// subscribe the caller to the matching event feed.
func SessionVerifier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionCookie, err := r.Cookie("session")
		if err != nil {
			sugar.Debug(err)
			switch {
			case errors.Is(err, http.ErrNoCookie):
				http.Error(w, "No session cookie was provided", http.StatusUnauthorized)
			default:
				http.Error(w, "Couldn't read session cookie", http.StatusInternalServerError)
			}
			return
		}

		sessionID, err := strconv.ParseInt(sessionCookie.Value, 10, 64)
		if err != nil {
			sugar.Error(err)
			http.Error(w, "Session cookie is in improper format", http.StatusBadRequest)
			return
		}

		_, exists := hub.GetClient(sessionID)
		if !exists {
			http.Error(w, "You are not connected to websocket", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKeyType{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserVerifier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jwtCookie, err := jwt.ReadCookie(r)
		if err != nil {
			sugar.Debug(err)
			switch {
			case errors.Is(err, http.ErrNoCookie):
				http.Error(w, "No jwt cookie was provided", http.StatusUnauthorized)
			default:
				http.Error(w, "Couldn't read jwt cookie", http.StatusInternalServerError)
			}
			return
		}

		userToken, err := jwt.VerifyToken(jwtCookie.Value)
		if err != nil {
			sugar.Debug(err)
			http.Error(w, "Couldn't verify JWT", http.StatusBadRequest)
			return
		}

		expired := time.Now().UTC().After(userToken.ExpiresAt.UTC())
		if expired {
			http.Error(w, "Login expired", http.StatusUnauthorized)
			return
		}

		userFound, err := verifyUserExists(userToken.UserID)
		if err != nil {
			sugar.Error(err)
			http.Error(w, "", http.StatusInternalServerError)
			return
		}

		// the token may outlive the user row it points at
		if !userFound {
			deleteCookie := jwt.DeleteCookie()
			http.SetCookie(w, &deleteCookie)
			http.Error(w, "", http.StatusUnauthorized)
			return
		}

		// renew JWT and cookie
		timeSinceLast := time.Now().UTC().Sub(userToken.IssuedAt.Time)
		if timeSinceLast >= 15*time.Minute {
			updatedCookie, err := jwt.CreateToken(userToken.Remember, userToken.UserID)
			if err != nil {
				sugar.Error(err)
				http.Error(w, "Couldn't renew cookie", http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &updatedCookie)
		}

		ctx := context.WithValue(r.Context(), UserIDKeyType{}, userToken.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func verifyUserExists(userID int64) (bool, error) {
	key := fmt.Sprintf("user_exists:%d", userID)

	value, err := keyValue.Get(key)
	if err != nil {
		return false, err
	}
	if value != "" {
		return true, nil
	}

	exists, err := st.UserExists(userID)
	if err != nil {
		return false, err
	}

	if exists {
		err = keyValue.Set(key, "y", 15*time.Minute)
		if err != nil {
			return false, err
		}
	}

	return exists, nil
}

func contextUserID(r *http.Request) int64 {
	return r.Context().Value(UserIDKeyType{}).(int64)
}

func contextSessionID(r *http.Request) int64 {
	return r.Context().Value(SessionIDKeyType{}).(int64)
}
