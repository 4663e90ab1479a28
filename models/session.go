package models

// Keys of the persisted session entries.
const (
	SessionKeyAccessToken  = "access_token"
	SessionKeyRefreshToken = "refresh_token"
	SessionKeyUser         = "user"
)

// SessionKeys lists every persisted session key. Purging a session removes
// all of them.
var SessionKeys = []string{SessionKeyAccessToken, SessionKeyRefreshToken, SessionKeyUser}

// Session is the client-side credential record: the token pair and the cached
// user profile.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// IsZero reports whether no credential is held.
func (s Session) IsZero() bool {
	return s.AccessToken == "" && s.RefreshToken == ""
}
