package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. A reset token cannot be replayed as a login token and vice
// versa: ParseToken checks the purpose claim.
const (
	PurposeAccess = "access"
	PurposeVerify = "verify"
	PurposeReset  = "reset"
)

type Claims struct {
	DoctorID  string `json:"doctorId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Purpose   string `json:"purpose"`
	jwt.RegisteredClaims
}

func MakeToken(secret, purpose, doctorID, email, firstName, lastName string, ttl time.Duration) (string, error) {
	c := Claims{
		DoctorID:  doctorID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Purpose:   purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			Subject:   doctorID,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

func ParseToken(secret, purpose, token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	if c.Purpose != purpose {
		return nil, errors.New("wrong token purpose")
	}
	return c, nil
}
