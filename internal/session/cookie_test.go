package session

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{ID: "5f0c1c9e-1111-4222-8333-444455556666", Admin: true, CreatedAt: now, ExpiresAt: now.Add(ttl)}
}

func TestCookieCodecRoundTrip(t *testing.T) {
	c := NewCookieCodec("connect.sid", "secret", false)
	s := testSession(time.Hour)

	raw, err := c.Encode(s)
	require.NoError(t, err)

	sid, err := c.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, s.ID, sid)
}

func TestCookieCodecRejects(t *testing.T) {
	c := NewCookieCodec("connect.sid", "secret", false)
	good, err := c.Encode(testSession(time.Hour))
	require.NoError(t, err)

	other, err := NewCookieCodec("connect.sid", "other-secret", false).Encode(testSession(time.Hour))
	require.NoError(t, err)

	expired, err := c.Encode(testSession(-time.Minute))
	require.NoError(t, err)

	forged := testSession(time.Hour)
	forged.ID = "someone-else"
	forgedRaw, err := c.Encode(forged)
	require.NoError(t, err)
	// payload of the forged token, signature of the good one
	gp, fp := strings.Split(good, "."), strings.Split(forgedRaw, ".")
	tampered := gp[0] + "." + fp[1] + "." + gp[2]

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"tampered":     tampered,
		"wrong secret": other,
		"expired":      expired,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decode(raw)
			assert.ErrorIs(t, err, ErrBadCookie)
		})
	}
}

func TestCookieAttributes(t *testing.T) {
	c := NewCookieCodec("connect.sid", "secret", true)
	s := testSession(time.Hour)

	ck, err := c.Cookie(s)
	require.NoError(t, err)
	assert.Equal(t, "connect.sid", ck.Name)
	assert.Equal(t, "/", ck.Path)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.InDelta(t, 3600, ck.MaxAge, 2)

	gone := c.Expired()
	assert.Equal(t, "connect.sid", gone.Name)
	assert.Empty(t, gone.Value)
	assert.Negative(t, gone.MaxAge)
}
