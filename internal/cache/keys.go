package cache

import "strconv"

// Cache keys mirror the REST path of the resource they hold.
const (
	KeyCurrentUser = "/api/auth/me"
	KeySessions    = "/api/sessions"
)

// SessionKey is the key of a single session with its questions.
func SessionKey(sessionID int64) string {
	return KeySessions + "/" + strconv.FormatInt(sessionID, 10)
}
