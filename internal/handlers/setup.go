package handlers

import (
	"chatverse-backend/internal/models"
	"chatverse-backend/internal/store"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger
var st *store.Store

var validate *validator.Validate

func Setup(isHttps bool, cfg *models.ConfigFile, _sugar *zap.SugaredLogger, _st *store.Store) error {
	sugar = _sugar
	st = _st

	validate = validator.New(validator.WithRequiredStructEnabled())

	r := chi.NewRouter()
	if cfg.PrintHttpRequests {
		r.Use(middleware.Logger)
	}

	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			r.Post("/login", Login)
			r.Post("/register", Register)
			r.With(UserVerifier).Post("/logout", Logout)
			r.With(UserVerifier).Get("/newSession", NewSession)
			r.With(UserVerifier).Get("/isLoggedIn", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
		})

		api.Route("/user", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Get("/fetch", GetUserInfo)
		})

		api.Route("/invite", func(r chi.Router) {
			r.Post("/pending", StashPendingInvite)
			r.With(UserVerifier).Post("/join", JoinServer)
		})

		api.Route("/server", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateServer)
			r.With(SessionVerifier).Get("/fetch", GetServerList)
			r.Post("/rename", RenameServer)
			r.Post("/setTheme", SetServerTheme)
		})

		api.Route("/channel", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateChannel)
			r.With(SessionVerifier).Get("/fetch", GetChannelList)
		})

		api.Route("/message", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateMessage)
			r.With(SessionVerifier).Get("/fetch", GetMessageList)
		})

		api.Route("/members", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Get("/fetch", GetMemberList)
			r.Get("/leaderboard", GetLeaderboard)
			r.Post("/kick", KickMember)
		})

		api.Route("/role", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateRole)
			r.Get("/fetch", GetRoleList)
			r.Post("/toggle", ToggleRole)
		})
	})

	var websocketPath string

	if cfg.BehindNginx {
		websocketPath = "/ws/"
	} else {
		websocketPath = "/ws"
		r.Handle("/*", http.FileServer(http.Dir("./public/static")))
	}

	r.With(UserVerifier).Get(websocketPath, HandleWebSocket)

	address := fmt.Sprintf("%s:%s", cfg.Address, cfg.Port)

	if isHttps {
		return http.ListenAndServeTLS(address, cfg.TlsCert, cfg.TlsKey, r)
	}
	return http.ListenAndServe(address, r)
}
