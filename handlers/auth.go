package handlers

import (
	"encoding/json"
	"net/http"

	"jjreviews/logger"
	"jjreviews/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	IsAdmin       bool   `json:"is_admin,omitempty"`
}

// LoginHandler signs the admin in. Failures come back as a JSON message for
// the login form to show inline; the submitted credentials stay client-side.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := services.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		logger.Warn("login failed", "email", req.Email)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	session, err := services.GetSession(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	session.Values["user_id"] = user.ID
	session.Values["username"] = user.Username
	if err := services.SaveSession(w, r, session); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	logger.Info("admin signed in", "username", user.Username)
	writeJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		Username:      user.Username,
		IsAdmin:       user.IsAdmin,
	})
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session, err := services.GetSession(r)
	if err == nil {
		session.Options.MaxAge = -1
		_ = services.SaveSession(w, r, session)
	}

	writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
}

// SessionHandler tells the front-end whether the admin controls should show.
func SessionHandler(w http.ResponseWriter, r *http.Request) {
	user, err := GetCurrentUser(r)
	if err != nil || user == nil {
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		Username:      user.Username,
		IsAdmin:       user.IsAdmin,
	})
}
