package auth

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const cookieName = "session"

// Identity is the authenticated identity carried on a request context.
type Identity struct {
	UserID string
	Name   string
	Role   string
}

// Claims is the session cookie payload: the identity fields plus the
// registered expiry.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Sessions signs and validates session cookies.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

// Token signs a session token for the given identity.
func (s *Sessions) Token(ident Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: ident.Name,
		Role: ident.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a session token and returns the identity it carries.
func (s *Sessions) Parse(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, errors.New("invalid session token")
	}

	return Identity{
		UserID: claims.Subject,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}

// IssueCookie signs a token for ident and sets it as an HttpOnly cookie.
func (s *Sessions) IssueCookie(w http.ResponseWriter, ident Identity) error {
	token, err := s.Token(ident)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	env := os.Getenv("ENV")
	secure := env == "prod" || env == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		HttpOnly: true, // XSS protection
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
	})
	return nil
}

// ClearCookie removes the session cookie.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1, // Delete cookie
	})
}

// FromRequest reads and validates the session cookie on r.
func (s *Sessions) FromRequest(r *http.Request) (Identity, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return Identity{}, false
	}
	ident, err := s.Parse(cookie.Value)
	if err != nil {
		return Identity{}, false
	}
	return ident, true
}
