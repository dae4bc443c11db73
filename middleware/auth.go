package middleware

import (
	"context"
	"strings"
	"time"

	"glowbook/services/auth"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// identityKey is the gin context key the auth gate stores claims under.
const identityKey = "identity"

// authCacheTTL bounds how long a verified token hash stays in Redis.
const authCacheTTL = time.Hour

// AuthRequired verifies the caller's session token and stores the decoded
// identity in the request context. The token is read from the "token" cookie
// or, failing that, an "Authorization: Bearer" header. Verified token hashes
// are cached in Redis so repeat requests skip signature verification.
func AuthRequired(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			utils.JSONError(c, utils.NewError(utils.KindUnauthenticated, "Authentication required."))
			c.Abort()
			return
		}

		computedHash := auth.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + computedHash

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			if claims, ok := cachedClaims(c.Request.Context(), authCache, cacheKey); ok {
				_ = authCache.Expire(c.Request.Context(), cacheKey, authCacheTTL).Err()
				c.Set(identityKey, claims)
				c.Next()
				return
			}
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			utils.JSONError(c, err)
			c.Abort()
			return
		}

		if authCache != nil {
			if err := cacheClaims(c.Request.Context(), authCache, cacheKey, *claims); err != nil {
				utils.GetLogger().Warn("Failed to cache auth token", zap.Error(err))
			}
		}

		c.Set(identityKey, *claims)
		c.Next()
	}
}

// Identity returns the authenticated caller's claims. The boolean is false on
// routes that did not pass through AuthRequired.
func Identity(c *gin.Context) (auth.Claims, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return auth.Claims{}, false
	}
	claims, ok := val.(auth.Claims)
	return claims, ok
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// The cache stores the already-decoded claims keyed by token hash, so a hit
// avoids signature verification and claim parsing on repeat requests. The
// stored expires_at is the token's own expiry, so a hit can never outlive the
// token it proves.
func cachedClaims(ctx context.Context, client *redis.Client, key string) (auth.Claims, bool) {
	fields, err := client.HGetAll(ctx, key).Result()
	if err != nil || len(fields) == 0 {
		if err != nil && err != redis.Nil {
			utils.GetLogger().Warn("Auth cache lookup failed", zap.Error(err))
		}
		return auth.Claims{}, false
	}
	exp, err := time.Parse(time.RFC3339, fields["expires_at"])
	if err != nil || time.Now().After(exp) {
		return auth.Claims{}, false
	}
	return auth.Claims{
		UserID:     fields["user_id"],
		Role:       fields["role"],
		Name:       fields["name"],
		Email:      fields["email"],
		ProviderID: fields["provider_id"],
		ExpiresAt:  exp,
	}, true
}

func cacheClaims(ctx context.Context, client *redis.Client, key string, claims auth.Claims) error {
	ttl := authCacheTTL
	if remaining := time.Until(claims.ExpiresAt); remaining < ttl {
		if remaining <= 0 {
			return nil
		}
		ttl = remaining
	}
	if err := client.HSet(ctx, key, map[string]interface{}{
		"user_id":     claims.UserID,
		"role":        claims.Role,
		"name":        claims.Name,
		"email":       claims.Email,
		"provider_id": claims.ProviderID,
		"expires_at":  claims.ExpiresAt.Format(time.RFC3339),
	}).Err(); err != nil {
		return err
	}
	return client.Expire(ctx, key, ttl).Err()
}
