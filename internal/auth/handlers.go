package auth

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AdminLoginHandler checks the configured admin credentials against a
// bcrypt hash and issues an admin token.
//
// POST /auth/admin/login  { "username": "...", "password": "..." }
func AdminLoginHandler(a *AuthService, adminUser, adminPassHash string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Username != adminUser ||
			bcrypt.CompareHashAndPassword([]byte(adminPassHash), []byte(req.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := a.IssueJWT(req.Username, "admin")
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok})
	}
}

// GuestLoginHandler issues student tokens with a browser-persistent guest
// identity. No account is created; the cookie alone names the guest.
func GuestLoginHandler(a *AuthService) http.HandlerFunc {
	type out struct {
		AccessToken string `json:"access_token"`
		Username    string `json:"username"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var userID string
		if c, err := r.Cookie("qf_guest_id"); err == nil && strings.HasPrefix(c.Value, "guest|") {
			userID = c.Value
		} else {
			userID = "guest|" + strconv.FormatInt(time.Now().UnixNano(), 36)
		}

		tok, err := a.IssueJWT(userID, "student")
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     "qf_guest_id",
			Value:    userID,
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
			Expires:  time.Now().Add(30 * 24 * time.Hour),
		})
		sfx := strings.TrimPrefix(userID, "guest|")
		name := "guest-" + sfx
		if len(sfx) > 6 {
			name = "guest-" + sfx[len(sfx)-6:]
		}
		_ = json.NewEncoder(w).Encode(out{AccessToken: tok, Username: name})
	}
}
