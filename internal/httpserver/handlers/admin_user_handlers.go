package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"inanisgarage/internal/auth"
	"inanisgarage/internal/models"
	"inanisgarage/internal/store"
)

// ListUsers marshals explicit views, never models.User: the password hash
// must not leave the snapshot.
func ListUsers(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users := st.ListUsers()
		out := make([]map[string]any, 0, len(users))
		for _, u := range users {
			out = append(out, map[string]any{
				"username":     u.Username,
				"role":         u.Role,
				"created_date": u.CreatedAt,
			})
		}
		respondJSON(w, out)
	}
}

func CreateUser(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username/password required", http.StatusBadRequest)
			return
		}
		role := strings.TrimSpace(req.Role)
		if role == "" {
			role = "user"
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}
		u := models.User{Username: req.Username, PasswordHash: hash, Role: role}
		if err := st.AddUser(u); err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("user added", "username", u.Username, "role", u.Role)
		respondJSON(w, map[string]any{"username": u.Username, "role": u.Role})
	}
}
