package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elethrixneil1/bsit1e/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_TokenRoundtrip(t *testing.T) {
	sessions := auth.NewSessions("test-secret", time.Hour)

	ident := auth.Identity{UserID: "t1", Name: "Mr. Reyes", Role: "teacher"}
	token, err := sessions.Token(ident)
	require.NoError(t, err)

	parsed, err := sessions.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, ident, parsed)
}

func TestSessions_RejectsTamperedToken(t *testing.T) {
	sessions := auth.NewSessions("test-secret", time.Hour)

	token, err := sessions.Token(auth.Identity{UserID: "s1", Name: "Alice", Role: "student"})
	require.NoError(t, err)

	_, err = sessions.Parse(token + "x")
	assert.Error(t, err)

	other := auth.NewSessions("different-secret", time.Hour)
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestSessions_RejectsExpiredToken(t *testing.T) {
	sessions := auth.NewSessions("test-secret", -time.Minute)

	token, err := sessions.Token(auth.Identity{UserID: "s1", Name: "Alice", Role: "student"})
	require.NoError(t, err)

	_, err = sessions.Parse(token)
	assert.Error(t, err)
}

func TestSessions_Cookies(t *testing.T) {
	sessions := auth.NewSessions("test-secret", time.Hour)
	ident := auth.Identity{UserID: "s1", Name: "Alice", Role: "student"}

	w := httptest.NewRecorder()
	require.NoError(t, sessions.IssueCookie(w, ident))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "session", cookie.Name)
	assert.True(t, cookie.HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(cookie)
	got, ok := sessions.FromRequest(r)
	require.True(t, ok)
	assert.Equal(t, ident, got)

	t.Run("NoCookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		_, ok := sessions.FromRequest(r)
		assert.False(t, ok)
	})

	t.Run("Clear", func(t *testing.T) {
		w := httptest.NewRecorder()
		sessions.ClearCookie(w)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
		assert.Empty(t, cookies[0].Value)
	})
}
