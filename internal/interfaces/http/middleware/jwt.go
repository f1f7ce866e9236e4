package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/infrastructure/auth"
	"github.com/propmanager/backend/internal/infrastructure/logger"
	"github.com/propmanager/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = logger.GinUserIDKey
	JWTEmailKey   = "jwt_email"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenValidator validates access tokens
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// Validator is required for token validation
	Validator TokenValidator
	// TokenBlacklist is optional for checking revoked tokens
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultSkipPaths are the public endpoints
var DefaultSkipPaths = []string{
	"/health",
	"/metrics",
	"/api",
	"/api/db-check",
	"/api/v1",
	"/api/v1/db-check",
	"/api/v1/auth/signup",
	"/api/v1/auth/login",
	"/api/v1/auth/refresh",
	"/api/auth/signup",
	"/api/auth/login",
	"/api/auth/refresh",
}

// DefaultJWTConfig returns the standard configuration
func DefaultJWTConfig(validator TokenValidator, blacklist auth.TokenBlacklist, log *zap.Logger) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		Validator:        validator,
		TokenBlacklist:   blacklist,
		SkipPaths:        DefaultSkipPaths,
		SkipPathPrefixes: []string{"/swagger/"},
		Logger:           log,
	}
}

// JWTAuth authenticates requests with a Bearer access token
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			abortAuth(c, cfg, dto.CodeMissingToken, "Access token required", nil)
			return
		}

		claims, err := cfg.Validator.ValidateAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortAuth(c, cfg, dto.CodeTokenExpired, "Token has expired", err)
				return
			}
			abortAuth(c, cfg, dto.CodeInvalidToken, "Invalid token", err)
			return
		}

		if cfg.TokenBlacklist != nil && revoked(c, cfg, claims) {
			abortAuth(c, cfg, dto.CodeInvalidToken, "Token has been revoked", auth.ErrTokenBlacklisted)
			return
		}

		SetPrincipal(c, claims)
		cfg.Logger.Debug("JWT authentication successful",
			zap.String("user_id", claims.UserID),
			zap.String("role", claims.Role),
		)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

// revoked fails open when the blacklist store is unavailable
func revoked(c *gin.Context, cfg JWTMiddlewareConfig, claims *auth.Claims) bool {
	ctx := c.Request.Context()

	if claims.ID != "" {
		blacklisted, err := cfg.TokenBlacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			cfg.Logger.Error("Failed to check token blacklist", zap.String("jti", claims.ID), zap.Error(err))
		} else if blacklisted {
			return true
		}
	}

	invalidated, err := cfg.TokenBlacklist.IsRevokedForUser(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		cfg.Logger.Error("Failed to check user token invalidation", zap.String("user_id", claims.UserID), zap.Error(err))
		return false
	}
	return invalidated
}

func abortAuth(c *gin.Context, cfg JWTMiddlewareConfig, code, message string, err error) {
	cfg.Logger.Warn("JWT authentication failed",
		zap.String("code", code),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// SetPrincipal stores the authenticated caller on the gin and request contexts
func SetPrincipal(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTEmailKey, claims.Email)
	c.Set(JWTRoleKey, identity.ParseRole(claims.Role))

	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetRole returns the caller's role, refreshed by RequireRole when it ran
func GetRole(c *gin.Context) identity.Role {
	if v, ok := c.Get(JWTRoleKey); ok {
		if r, ok := v.(identity.Role); ok {
			return r
		}
	}
	return ""
}

// GetPrincipal assembles the caller for application services
func GetPrincipal(c *gin.Context) (identity.Principal, error) {
	id, err := uuid.Parse(GetJWTUserID(c))
	if err != nil {
		return identity.Principal{}, errors.New("user ID not found in context")
	}
	return identity.Principal{
		UserID: id,
		Email:  c.GetString(JWTEmailKey),
		Role:   GetRole(c),
	}, nil
}
