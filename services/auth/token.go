package auth

import (
	"time"

	"glowbook/utils"

	"github.com/golang-jwt/jwt"
)

// TokenTTL is how long an issued token stays valid. There is no refresh;
// clients re-authenticate after expiry.
const TokenTTL = 24 * time.Hour

// Claims is the identity carried by a signed token for the token's lifetime.
type Claims struct {
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ProviderID string `json:"provider_id,omitempty"` // Set only for SERVICE_PROVIDER identities

	// ExpiresAt is populated by Verify from the token's exp claim.
	ExpiresAt time.Time `json:"-"`
}

// TokenService issues and verifies signed identity tokens. The signing
// secret is injected at construction so it can be swapped per test.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: TokenTTL}
}

// Issue creates a signed HS256 token encoding the claims plus issued-at and
// expiry timestamps.
func (s *TokenService) Issue(claims Claims) (string, error) {
	now := time.Now()
	mapClaims := jwt.MapClaims{
		"sub":   claims.UserID,
		"role":  claims.Role,
		"name":  claims.Name,
		"email": claims.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	if claims.ProviderID != "" {
		mapClaims["provider_id"] = claims.ProviderID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string and returns the decoded claims.
// Expired tokens and malformed or badly signed tokens both surface as
// Unauthenticated errors, with distinct messages.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, utils.NewError(utils.KindUnauthenticated, "unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if vErr, ok := err.(*jwt.ValidationError); ok && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, utils.NewError(utils.KindUnauthenticated, "token expired")
		}
		return nil, utils.WrapError(utils.KindUnauthenticated, err, "invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, utils.NewError(utils.KindUnauthenticated, "invalid token")
	}

	claims := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.UserID = sub
	}
	if claims.UserID == "" {
		return nil, utils.NewError(utils.KindUnauthenticated, "token does not contain a valid 'sub' claim")
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if providerID, ok := mapClaims["provider_id"].(string); ok {
		claims.ProviderID = providerID
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return claims, nil
}
