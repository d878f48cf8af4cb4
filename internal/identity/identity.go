// Package identity tracks which user the local state belongs to.
package identity

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	UID         string
	DisplayName string
	Email       string
}

// Provider supplies the current user and notifies observers when it changes.
// A nil user means signed out.
type Provider interface {
	Current() *User
	Subscribe(fn func(*User)) (unsubscribe func())
}

// Static is a Provider whose user is set explicitly.
type Static struct {
	mu        sync.Mutex
	user      *User
	observers map[int]func(*User)
	nextID    int
}

func NewStatic(u *User) *Static {
	s := &Static{observers: map[int]func(*User){}}
	if u != nil && u.UID != "" {
		cp := *u
		s.user = &cp
	}
	return s
}

func (s *Static) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

// Set replaces the user and notifies observers when the UID changed.
func (s *Static) Set(u *User) {
	s.mu.Lock()
	var next *User
	if u != nil && u.UID != "" {
		cp := *u
		next = &cp
	}
	if uid(s.user) == uid(next) {
		s.user = next
		s.mu.Unlock()
		return
	}
	s.user = next
	observers := make([]func(*User), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		if next == nil {
			fn(nil)
			continue
		}
		cp := *next
		fn(&cp)
	}
}

func (s *Static) Subscribe(fn func(*User)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

func uid(u *User) string {
	if u == nil {
		return ""
	}
	return u.UID
}

var ErrInvalidToken = errors.New("invalid identity token")

type tokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// FromToken verifies an HS256 token and returns the user in its claims.
func FromToken(token, secret string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" || secret == "" {
		return nil, ErrInvalidToken
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &User{UID: claims.Subject, DisplayName: claims.Name, Email: claims.Email}, nil
}

// IssueToken signs an HS256 token for u. It exists for local tooling and tests.
func IssueToken(u User, secret string) (string, error) {
	claims := tokenClaims{
		Name:             u.DisplayName,
		Email:            u.Email,
		RegisteredClaims: jwt.RegisteredClaims{Subject: u.UID},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
