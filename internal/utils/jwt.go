package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. Tokens are carried in the Authorization header
// when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims is the identity a verified token asserts. Validity is fully
// determined by signature and expiry; no store lookup happens here, so a
// user demoted or deactivated after issuance keeps these claims until the
// token expires naturally.
type Claims struct {
	UserID   uint64
	Username string
	Role     string
}

// Sentinel errors returned by ParseAccessToken. Handlers map them to 401
// responses with distinct messages.
var (
	ErrTokenMissing = errors.New("missing token")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user's identity and a TTL in hours, and returns the
// signed token with its expiration time. The JWT carries the subject (sub),
// username, role, expiration (exp) and issued at (iat) claims.
func NewAccessToken(secret string, userID uint64, username, role string, ttlHours int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"role":     role,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies a raw token string against the signing secret
// and returns the embedded claims. It rejects tokens signed with anything
// but HMAC. Failures collapse into the three sentinel errors above.
func ParseAccessToken(secret, raw string) (Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return Claims{}, ErrTokenMissing
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	var out Claims
	// JWT numeric values decode as float64; tolerate numeric strings too.
	switch sub := mc["sub"].(type) {
	case float64:
		out.UserID = uint64(sub)
	case string:
		n, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return Claims{}, ErrTokenInvalid
		}
		out.UserID = n
	default:
		return Claims{}, ErrTokenInvalid
	}
	if s, ok := mc["username"].(string); ok {
		out.Username = s
	}
	if s, ok := mc["role"].(string); ok {
		out.Role = s
	}
	return out, nil
}
