package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const secret = "a-test-secret-of-decent-length"

func TestHashAndCheck(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("chalkboard")
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$2a$"))

	ok, err := CheckPassword("chalkboard", hash)
	req.NoError(err)
	req.True(ok)

	ok, err = CheckPassword("whiteboard", hash)
	req.NoError(err)
	req.False(ok)

	_, err = CheckPassword("chalkboard", "not-a-hash")
	req.Error(err)
}

func TestTokens(t *testing.T) {
	req := require.New(t)
	tk, err := NewTokens(secret, time.Hour, "")
	req.NoError(err)

	s, err := tk.Issue(42)
	req.NoError(err)
	claims, err := tk.Parse(s)
	req.NoError(err)
	req.EqualValues(42, claims.TeacherID)
	req.Equal("teachlens", claims.Issuer)
	req.Equal("42", claims.Subject)

	// Then tokens signed with another secret are rejected
	other, err := NewTokens(secret+"-other", time.Hour, "")
	req.NoError(err)
	forged, err := other.Issue(42)
	req.NoError(err)
	_, err = tk.Parse(forged)
	req.ErrorIs(err, jwt.ErrTokenSignatureInvalid)

	_, err = tk.Parse("garbage")
	req.Error(err)
}

func TestTokens_Expired(t *testing.T) {
	req := require.New(t)
	tk, err := NewTokens(secret, time.Hour, "")
	req.NoError(err)
	tk.ttl = -time.Minute

	s, err := tk.Issue(7)
	req.NoError(err)
	_, err = tk.Parse(s)
	req.ErrorIs(err, jwt.ErrTokenExpired)
}

func TestTokens_RejectsOtherAlgorithms(t *testing.T) {
	req := require.New(t)
	tk, err := NewTokens(secret, time.Hour, "")
	req.NoError(err)

	claims := &Claims{TeacherID: 1, RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "teachlens",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	req.NoError(err)
	_, err = tk.Parse(s)
	req.ErrorIs(err, jwt.ErrTokenSignatureInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	req.NoError(err)
	_, err = tk.Parse(none)
	req.Error(err)
}

func TestNewTokens_ShortSecret(t *testing.T) {
	_, err := NewTokens("short", time.Hour, "")
	require.Error(t, err)
}

func TestRegisterValidation(t *testing.T) {
	req := require.New(t)
	valid := func() RegisterRequest {
		return RegisterRequest{
			FirstName:        "Maria",
			LastName:         "Montessori",
			Email:            "maria@school.test",
			EducationDetails: "Primary education, 20 years",
			Password:         "secret1",
			ConfirmPassword:  "secret1",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*RegisterRequest)
		wantErr bool
	}{
		{"Valid request", func(*RegisterRequest) {}, false},
		{"Blank first name", func(r *RegisterRequest) { r.FirstName = "   " }, true},
		{"Missing last name", func(r *RegisterRequest) { r.LastName = "" }, true},
		{"Invalid email", func(r *RegisterRequest) { r.Email = "maria-at-school" }, true},
		{"Short education details", func(r *RegisterRequest) { r.EducationDetails = "BSc" }, true},
		{"Password too short", func(r *RegisterRequest) { r.Password, r.ConfirmPassword = "abc12", "abc12" }, true},
		{"Confirmation mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "secret2" }, true},
		{"Email with spaces is trimmed", func(r *RegisterRequest) { r.Email = " maria@school.test " }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			r := valid()
			tt.mutate(&r)
			err := r.Validate()
			req.Equal(tt.wantErr, err != nil, tt.name)
		})
	}

	login := LoginRequest{Email: "maria@school.test"}
	req.Error(login.Validate())
}
