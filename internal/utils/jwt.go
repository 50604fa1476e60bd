package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Claims is the decoded payload of an identity token. The token is
// self-contained: handlers never touch the database to learn who is
// calling, they read these fields from the request context instead.
type Claims struct {
	UserID   uint64 // subject user id
	Email    string // email at time of issue
	RoleID   uint64 // role id at time of issue; 1 denotes admin
	Fullname string // display name at time of issue
}

// ErrInvalidToken is returned by VerifyToken when the signature does not
// match, the payload is malformed, or the token has expired.
var ErrInvalidToken = errors.New("invalid token")

// IssueToken builds and signs an HS256 JWT carrying the given claims.
// Tokens expire after ttlMin minutes.
func IssueToken(secret string, cl Claims, ttlMin int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":  cl.UserID,
		"email":    cl.Email,
		"role_id":  cl.RoleID,
		"fullname": cl.Fullname,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Duration(ttlMin) * time.Minute).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyToken parses and validates a token string and returns its claims.
// Only HMAC-signed tokens are accepted; anything else fails with
// ErrInvalidToken. Expiry is enforced by the jwt library via the exp claim.
func VerifyToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	cl := Claims{}
	if cl.UserID, ok = claimUint(mc, "user_id"); !ok {
		return Claims{}, ErrInvalidToken
	}
	if cl.RoleID, ok = claimUint(mc, "role_id"); !ok {
		return Claims{}, ErrInvalidToken
	}
	cl.Email, _ = mc["email"].(string)
	cl.Fullname, _ = mc["fullname"].(string)
	if cl.Email == "" {
		return Claims{}, ErrInvalidToken
	}
	return cl, nil
}

// claimUint reads a numeric claim. JSON numbers decode as float64, so a
// conversion is needed before the value can be used as an id.
func claimUint(mc jwt.MapClaims, key string) (uint64, bool) {
	switch v := mc[key].(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case uint64:
		return v, true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	}
	return 0, false
}
