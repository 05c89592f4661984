package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/clock"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/config"
)

const leeway = 30 * time.Second

var (
	ErrMissingSecret = errors.New("auth_secret_missing")
	ErrMissingToken  = errors.New("missing_token")
	ErrInvalidToken  = errors.New("invalid_token")
)

// Identity is the caller resolved from a verified token.
type Identity struct {
	UserID     string
	MerchantID snowflake.ID
	Role       string
}

// HasMerchant reports whether the token is bound to a merchant.
func (i Identity) HasMerchant() bool {
	return i.MerchantID > 0
}

// Verifier resolves a bearer token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Claims is the token payload. merchant_id is optional so that a user can authenticate
// before registering a merchant.
type Claims struct {
	MerchantID string `json:"merchant_id,omitempty"`
	UserID     string `json:"user_id"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type hmacVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(cfg config.Config, clk clock.Clock) (Verifier, error) {
	secret := strings.TrimSpace(cfg.AuthJWTSecret)
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &hmacVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(leeway),
			jwt.WithTimeFunc(clk.Now),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

func (v *hmacVerifier) Verify(_ context.Context, raw string) (*Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID := strings.TrimSpace(claims.UserID)
	if userID == "" {
		userID = strings.TrimSpace(claims.Subject)
	}
	if userID == "" {
		return nil, ErrInvalidToken
	}

	identity := &Identity{UserID: userID, Role: strings.TrimSpace(claims.Role)}
	if merchant := strings.TrimSpace(claims.MerchantID); merchant != "" {
		id, err := snowflake.ParseString(merchant)
		if err != nil || id <= 0 {
			return nil, ErrInvalidToken
		}
		identity.MerchantID = id
	}
	return identity, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
