package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticNotifiesOnUIDChange(t *testing.T) {
	s := NewStatic(nil)
	assert.Nil(t, s.Current())

	var seen []string
	unsubscribe := s.Subscribe(func(u *User) { seen = append(seen, uid(u)) })

	s.Set(&User{UID: "a", DisplayName: "A"})
	s.Set(&User{UID: "a", DisplayName: "Renamed"})
	s.Set(&User{UID: "b"})
	s.Set(nil)
	unsubscribe()
	s.Set(&User{UID: "c"})

	assert.Equal(t, []string{"a", "b", ""}, seen)
	require.NotNil(t, s.Current())
	assert.Equal(t, "c", s.Current().UID)
}

func TestStaticCurrentIsCopy(t *testing.T) {
	s := NewStatic(&User{UID: "a"})
	u := s.Current()
	u.UID = "mutated"
	assert.Equal(t, "a", s.Current().UID)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken(User{UID: "u1", DisplayName: "Rin", Email: "rin@example.com"}, "s3cret")
	require.NoError(t, err)

	u, err := FromToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, &User{UID: "u1", DisplayName: "Rin", Email: "rin@example.com"}, u)

	_, err = FromToken(token, "wrong")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestFromTokenRejectsExpiredAndSubjectless(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = FromToken(signed, "k")
	assert.ErrorIs(t, err, ErrInvalidToken)

	anon, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{Name: "x"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = FromToken(anon, "k")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = FromToken("", "k")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
