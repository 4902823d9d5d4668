package web

import (
	"net/http"

	"github.com/moimlab/moim/server"
)

type handler struct {
	*server.Server
}

func Routes(srv *server.Server) http.Handler {
	h := &handler{
		Server: srv,
	}

	mux := http.NewServeMux()

	mux.Handle("POST /auth/sign-up", h.rateLimit(http.HandlerFunc(h.SignUp)))
	mux.Handle("POST /auth/login", h.rateLimit(http.HandlerFunc(h.Login)))
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("PUT  /auth/password", h.ChangePassword)

	mux.HandleFunc("GET    /users/{user_id}", h.GetUser)
	mux.HandleFunc("PATCH  /users/{user_id}", h.UpdateUser)
	mux.HandleFunc("DELETE /users/{user_id}", h.DeleteUser)

	mux.Handle("GET /categories", cache(http.HandlerFunc(h.GetCategories)))
	mux.Handle("GET /cities", cache(http.HandlerFunc(h.GetCities)))

	mux.HandleFunc("POST /clubs", h.CreateClub)
	mux.HandleFunc("GET  /clubs", h.GetClubs)
	mux.HandleFunc("PATCH  /clubs/{club_id}", h.UpdateClub)
	mux.HandleFunc("DELETE /clubs/{club_id}", h.DeleteClub)
	mux.HandleFunc("POST  /clubs/{club_id}/join", h.JoinClub)
	mux.HandleFunc("POST  /clubs/{club_id}/out", h.OutClub)
	mux.HandleFunc("PATCH /clubs/{club_id}/delegate", h.DelegateClub)
	mux.HandleFunc("POST  /clubs/{club_id}/approve", h.ApproveClubMember)
	mux.HandleFunc("POST  /clubs/{club_id}/refuse", h.RefuseClubMember)

	mux.HandleFunc("POST /events", h.CreateEvent)
	mux.HandleFunc("GET  /events", h.GetEvents)
	mux.HandleFunc("GET  /events/me", h.GetMyEvents)
	mux.HandleFunc("GET    /events/{event_id}", h.GetEvent)
	mux.HandleFunc("PATCH  /events/{event_id}", h.UpdateEvent)
	mux.HandleFunc("DELETE /events/{event_id}", h.DeleteEvent)
	mux.HandleFunc("POST /events/{event_id}/join", h.JoinEvent)
	mux.HandleFunc("POST /events/{event_id}/out", h.OutEvent)

	return h.auth(mux)
}

func cache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "stale-while-revalidate, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
