package auth

import (
	"errors"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity carried by a session token.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidToken  = errors.New("invalid token")
	errMissingSecret = errors.New("JWT_SECRET is required outside dev")
)

const (
	issuer           = "resume-studio"
	downloadAudience = "download"
	sessionTTL       = 24 * time.Hour
	clockSkew        = 30 * time.Second
)

// SignJWT issues an HS256 session token. Missing iat and exp default to now and now+24h.
func SignJWT(claims Claims) (string, error) {
	if claims.Subject == "" {
		return "", errors.New("auth: subject is required")
	}
	now := time.Now().UTC()
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(sessionTTL))
	}
	if claims.Issuer == "" {
		claims.Issuer = issuer
	}
	return sign(claims)
}

// VerifyJWT returns the claims of a valid session token. Download tokens are rejected.
func VerifyJWT(token string) (Claims, error) {
	claims, err := parse(token)
	if err != nil {
		return Claims{}, err
	}
	if slices.Contains(claims.Audience, downloadAudience) {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// SignDownloadToken issues a token that opens one stored export until ttl elapses.
func SignDownloadToken(userID, artifactID string, ttl time.Duration) (string, error) {
	if userID == "" || artifactID == "" {
		return "", errors.New("auth: user and artifact are required")
	}
	now := time.Now().UTC()
	return sign(Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ID:        artifactID,
		Audience:  jwt.ClaimStrings{downloadAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}})
}

// VerifyDownloadToken returns the owner and artifact a download token names.
func VerifyDownloadToken(token string) (userID, artifactID string, err error) {
	claims, err := parse(token, jwt.WithAudience(downloadAudience))
	if err != nil {
		return "", "", err
	}
	if claims.ID == "" {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.ID, nil
}

func sign(claims Claims) (string, error) {
	key, err := signingKey()
	if err != nil {
		return "", err
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// parse checks signature, algorithm, expiry and subject. Every failure is ErrInvalidToken.
func parse(token string, opts ...jwt.ParserOption) (Claims, error) {
	key, err := signingKey()
	if err != nil {
		return Claims{}, err
	}
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) { return key, nil }, opts...)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// signingKey reads JWT_SECRET on every call so tests can swap it. Dev falls back to a fixed key.
func signingKey() ([]byte, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret != "" {
		return []byte(secret), nil
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))) {
	case "production", "prod", "staging", "stage":
		return nil, errMissingSecret
	}
	return []byte("dev-secret"), nil
}
