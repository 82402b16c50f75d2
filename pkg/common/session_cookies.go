package common

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SessionTracker is notified when a visitor without a session cookie arrives.
type SessionTracker interface {
	TrackSession(sessionId int, r *http.Request)
}

const sessionCookie = "sid"

func generateSessionId() int {
	return int(time.Now().UnixNano())
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    fmt.Sprintf("%d", sessionId),
		Domain:   strings.TrimPrefix(r.Host, "."),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   2592000,
		Path:     "/",
	})
}

// HandleSessionCookie returns the session id of the request, issuing a new
// cookie when it is missing or unreadable.
func HandleSessionCookie(tracker SessionTracker, w http.ResponseWriter, r *http.Request) int {
	c, err := r.Cookie(sessionCookie)
	if err == nil {
		if sessionId, err := strconv.Atoi(c.Value); err == nil {
			return sessionId
		}
	}
	sessionId := generateSessionId()
	if tracker != nil {
		go tracker.TrackSession(sessionId, r)
	}
	setSessionCookie(w, r, sessionId)
	return sessionId
}
