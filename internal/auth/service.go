package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/benchwise/teamforge/internal/domain/model"
)

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	defaultIssuer     = "teamforge"
	defaultSessionTTL = 12 * time.Hour
)

// Session identifies the authenticated caller on a request.
type Session struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Organization string `json:"organization"`
	Role         Role   `json:"role"`
}

// Guest is the session attached to unauthenticated requests.
var Guest = Session{Role: RoleGuest}

// Claims is the JWT payload carried by a session token.
type Claims struct {
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Organization string `json:"org"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

// Token is the login response payload.
type Token struct {
	AccessToken string     `json:"access_token"`
	ExpiresIn   int64      `json:"expires_in"`
	User        model.User `json:"user"`
}

type credential struct {
	password string
	user     model.User
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSessionTTL overrides the token lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// Service issues and verifies session tokens against the demo account table.
type Service struct {
	secret []byte
	ttl    time.Duration
	issuer string
	users  map[string]credential
}

// NewService creates a Service with the demo accounts registered.
func NewService(secret string, opts ...Option) *Service {
	s := &Service{
		secret: []byte(secret),
		ttl:    defaultSessionTTL,
		issuer: defaultIssuer,
		users:  demoAccounts(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// demoAccounts is the fixed credential table the demo runs with. One account
// per non-guest role.
func demoAccounts() map[string]credential {
	return map[string]credential{
		"admin@northbeam.example": {
			password: "admin123",
			user: model.User{
				ID: "usr-admin", Email: "admin@northbeam.example",
				FullName: "Nadia Rahman", Role: string(RoleAdmin),
				Organization: "Northbeam Consulting",
			},
		},
		"manager@southline.example": {
			password: "manager123",
			user: model.User{
				ID: "usr-manager", Email: "manager@southline.example",
				FullName: "Viktor Lindqvist", Role: string(RolePartnerManager),
				Organization: "Southline Digital",
			},
		},
		"pro@brightforge.example": {
			password: "pro123",
			user: model.User{
				ID: "usr-pro", Email: "pro@brightforge.example",
				FullName: "Chiamaka Eze", Role: string(RoleProfessional),
				Organization: "Brightforge Labs",
			},
		},
	}
}

// Login checks the demo credential table and issues a session token.
func (s *Service) Login(email, password string) (Token, error) {
	cred, ok := s.users[email]
	if !ok || subtle.ConstantTimeCompare([]byte(cred.password), []byte(password)) != 1 {
		return Token{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := Claims{
		Email:        cred.user.Email,
		FullName:     cred.user.FullName,
		Organization: cred.user.Organization,
		Role:         cred.user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   cred.user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("signing session token: %w", err)
	}

	return Token{
		AccessToken: signed,
		ExpiresIn:   int64(s.ttl.Seconds()),
		User:        cred.user,
	}, nil
}

// Verify parses a session token and returns the session it carries.
func (s *Service) Verify(token string) (Session, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}

	role := Role(claims.Role)
	if !role.Valid() {
		return Session{}, ErrInvalidToken
	}

	return Session{
		UserID:       claims.Subject,
		Email:        claims.Email,
		FullName:     claims.FullName,
		Organization: claims.Organization,
		Role:         role,
	}, nil
}
