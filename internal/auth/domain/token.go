package domain

// TokenPair is what credential endpoints return: the short-lived access JWT
// and the longer-lived refresh JWT whose hash is tracked server-side.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RequestMeta carries the device metadata recorded with each session.
type RequestMeta struct {
	UserAgent string
	Platform  string
	IP        string
}
