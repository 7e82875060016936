package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrBadCookie is returned by Decode for cookies that are malformed, carry a
// bad signature or have expired.
var ErrBadCookie = errors.New("session: invalid cookie")

// CookieCodec turns session ids into signed cookie values and back.  The
// value is an HS256 JWT holding the id (sid) and its expiry, so a client
// cannot forge or extend a session id without the secret.
type CookieCodec struct {
	Name   string
	Secret []byte
	Secure bool
}

func NewCookieCodec(name, secret string, secure bool) CookieCodec {
	return CookieCodec{Name: name, Secret: []byte(secret), Secure: secure}
}

// Encode signs the id of s.
func (c CookieCodec) Encode(s *Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": s.ID,
		"exp": s.ExpiresAt.Unix(),
		"iat": s.CreatedAt.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
}

// Decode verifies raw and returns the session id it carries.
func (c CookieCodec) Decode(raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadCookie
		}
		return c.Secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", ErrBadCookie
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrBadCookie
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrBadCookie
	}
	return sid, nil
}

// Cookie builds the Set-Cookie value for s.  Expiry is fixed at the session's
// ExpiresAt.
func (c CookieCodec) Cookie(s *Session) (*http.Cookie, error) {
	v, err := c.Encode(s)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     c.Name,
		Value:    v,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Expired returns a cookie that makes the client drop the session cookie.
func (c CookieCodec) Expired() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
