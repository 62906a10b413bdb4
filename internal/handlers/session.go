package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
)

// DefaultSessionName is the cookie name used when none is configured.
const DefaultSessionName = "authgate_session"

const (
	sessionUsernameKey = "username"
	sessionPasswordKey = "password"
)

const (
	authKeyLength       = 64
	encryptionKeyLength = 32
)

// NewSessionStore returns a cookie store whose cookies are signed with
// authKey and encrypted with encryptionKey. Empty keys are generated at
// random, so sessions then do not survive a restart. The encryption key must
// be 16, 24 or 32 bytes long.
func NewSessionStore(authKey, encryptionKey []byte) (sessions.Store, error) {
	if len(authKey) == 0 {
		authKey = securecookie.GenerateRandomKey(authKeyLength)
	}
	if len(encryptionKey) == 0 {
		encryptionKey = securecookie.GenerateRandomKey(encryptionKeyLength)
	}
	if authKey == nil || encryptionKey == nil {
		return nil, errors.New("generate session keys: random source unavailable")
	}
	switch len(encryptionKey) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("session encryption key must be 16, 24 or 32 bytes, got %d", len(encryptionKey))
	}

	store := cookie.NewStore(authKey, encryptionKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   0, // browser-session cookie
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func mustRandomSessionStore() sessions.Store {
	store, err := NewSessionStore(nil, nil)
	if err != nil {
		panic(err)
	}
	return store
}

func sessionString(s sessions.Session, key string) string {
	if v, ok := s.Get(key).(string); ok {
		return v
	}
	return ""
}

// sessionCredentials returns the username and password held by the session.
func sessionCredentials(c *gin.Context) (string, string) {
	s := sessions.Default(c)
	return sessionString(s, sessionUsernameKey), sessionString(s, sessionPasswordKey)
}

func sessionUsername(c *gin.Context) string {
	return sessionString(sessions.Default(c), sessionUsernameKey)
}

func setLoginUser(c *gin.Context, username, password string) error {
	s := sessions.Default(c)
	s.Set(sessionUsernameKey, username)
	s.Set(sessionPasswordKey, password)
	return s.Save()
}

// clearLoginUser drops the username only; that alone closes the gate.
func clearLoginUser(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(sessionUsernameKey)
	return s.Save()
}
