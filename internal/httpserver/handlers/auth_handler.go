package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"inanisgarage/internal/auth"
	"inanisgarage/internal/store"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		u, ok := st.GetUser(req.Username)
		if !ok || auth.CheckPassword(u.PasswordHash, req.Password) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := auth.Sign(u.Username, u.Role)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}
		lg.Infow("login", "username", u.Username)
		respondJSON(w, map[string]any{"token": tok, "role": u.Role})
	}
}

// Logout exists for route symmetry; tokens are stateless, so discarding the
// token client-side is the whole operation.
func Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, map[string]any{"ok": true})
	}
}

func Me(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := st.GetUser(auth.Subject(r.Context()))
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondJSON(w, map[string]any{
			"username":     u.Username,
			"role":         u.Role,
			"created_date": u.CreatedAt,
		})
	}
}

func ChangePassword(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Current string `json:"current_password"`
			New     string `json:"new_password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.New == "" {
			http.Error(w, "new_password required", http.StatusBadRequest)
			return
		}
		username := auth.Subject(r.Context())
		u, ok := st.GetUser(username)
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if auth.CheckPassword(u.PasswordHash, req.Current) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		hash, err := auth.HashPassword(req.New)
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}
		if err := st.SetPassword(username, hash); err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("password changed", "username", username)
		respondJSON(w, map[string]any{"updated": true})
	}
}
