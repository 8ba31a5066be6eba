package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the session JWT payload.
type Claims struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issue signs a session token for the resolved user.
func Issue(u User, issuer, key string, ttl time.Duration) (token string, expiresAt time.Time, err error) {
	expiresAt = time.Now().Add(ttl)
	claims := Claims{
		Name:  u.Name,
		Role:  string(u.Role),
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	return token, expiresAt, err
}

// Parse validates a token and returns the session user.
func Parse(tokenStr, key, issuer string) (User, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	})
	if err != nil {
		return User{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return User{}, errors.New("invalid token")
	}
	if issuer != "" && claims.Issuer != issuer {
		return User{}, errors.New("issuer mismatch")
	}
	u := User{
		ID:    claims.Subject,
		Name:  claims.Name,
		Role:  Role(claims.Role),
		Email: claims.Email,
	}
	if !u.Role.IsValid() {
		return User{}, errors.New("unknown role")
	}
	return u, nil
}
