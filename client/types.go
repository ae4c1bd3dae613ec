package client

import "time"

// ErrorResponse is the Microsoft Graph error shape
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Token is a bearer token from the identity platform. It is used for a
// single request and never persisted.
type Token struct {
	AccessToken string
	Expiry      time.Time
}

// String hides the token value from logs and error messages.
func (t *Token) String() string {
	if t == nil || t.AccessToken == "" {
		return "Token(empty)"
	}
	return "Token(redacted)"
}
