package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"

	"jjreviews/logger"
	"jjreviews/services"
)

func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// parseUserID converts the session value to int64; gorilla may hand back
// whatever gob stored.
func parseUserID(userID interface{}) (int64, error) {
	switch v := userID.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, strconv.ErrSyntax
	}
}

// RequireAdmin gates the mutating endpoints. The API returns JSON errors
// rather than redirecting; there is no login page to redirect to.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := services.GetSession(r)
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		userID, ok := session.Values["user_id"]
		if !ok {
			denyJSON(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		userIDInt, err := parseUserID(userID)
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		user, err := services.GetUserByID(userIDInt)
		if err != nil {
			logger.Warn("session user no longer exists", "user_id", userIDInt)
			denyJSON(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		if !user.IsAdmin {
			denyJSON(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
