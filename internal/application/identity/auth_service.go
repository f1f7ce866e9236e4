package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/shared"
	"github.com/propmanager/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password
var ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid credentials")

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Signup registers a tenant account and signs it in
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, shared.NormalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
	}

	user, err := identity.NewUser(input.Email, input.Password, input.FirstName, input.LastName, identity.RoleTenant)
	if err != nil {
		return nil, err
	}
	if err := user.SetPhone(input.Phone); err != nil {
		return nil, err
	}
	user.RecordLogin()

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
		}
		return nil, err
	}

	s.logger.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.issue(user)
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if problems := shared.ValidateRequired(
		shared.Field{Name: "email", Value: input.Email},
		shared.Field{Name: "password", Value: input.Password},
	); len(problems) > 0 {
		return nil, shared.InvalidInput("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown email", zap.String("email", shared.NormalizeEmail(input.Email)))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	user.RecordLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// the login itself succeeded
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("ip", input.IP))

	return s.issue(user)
}

// RefreshToken rotates a refresh token. The presented token is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*AuthResult, error) {
	if input.RefreshToken == "" {
		return nil, shared.InvalidInput("refreshToken is required")
	}

	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, mapTokenError(auth.ErrInvalidClaims)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "User not found")
		}
		return nil, err
	}

	pair, old, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Email, user.Role.String())
	if err != nil {
		return nil, mapTokenError(err)
	}
	if err := s.blacklist.Revoke(ctx, old.ID, old.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Token refreshed",
		zap.String("user_id", user.ID.String()),
		zap.Int("refresh_count", old.RefreshCount+1))

	return toAuthResult(pair, nil), nil
}

// VerifyToken validates an access token and returns its owner
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*UserInfo, error) {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, mapTokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, mapTokenError(auth.ErrInvalidClaims)
	}
	return s.GetCurrentUser(ctx, userID)
}

// Logout revokes the caller's access token until it would have expired
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" {
		return nil
	}
	ttl := time.Until(input.ExpiresAt)
	if err := s.blacklist.Revoke(ctx, input.TokenJTI, ttl); err != nil {
		s.logger.Error("Failed to revoke access token", zap.Error(err))
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser retrieves the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("User")
		}
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// UpdateProfile applies a partial update to the caller's own profile
func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("User")
		}
		return nil, err
	}

	first, last := user.FirstName, user.LastName
	if input.FirstName != nil {
		first = *input.FirstName
	}
	if input.LastName != nil {
		last = *input.LastName
	}
	if err := user.SetName(first, last); err != nil {
		return nil, err
	}
	if input.Phone != nil {
		if err := user.SetPhone(*input.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("Profile updated", zap.String("user_id", user.ID.String()))

	info := ToUserInfo(user)
	return &info, nil
}

// ChangePassword changes a user's password
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if input.NewPassword == "" {
		return shared.InvalidInput("newPassword is required")
	}
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("User")
		}
		return err
	}

	if input.CurrentPassword != "" {
		err = user.ChangePassword(input.CurrentPassword, input.NewPassword)
	} else {
		err = user.SetPassword(input.NewPassword)
	}
	if err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// tokens issued before now stop working
	if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Warn("Failed to invalidate existing tokens", zap.Error(err))
	}

	s.logger.Info("User password changed", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *AuthService) issue(user *identity.User) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}
	info := ToUserInfo(user)
	return toAuthResult(pair, &info), nil
}

// checkRevoked rejects tokens revoked individually or by a password change
func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !revoked {
		revoked, err = s.blacklist.IsRevokedForUser(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			return err
		}
	}
	if revoked {
		return mapTokenError(auth.ErrTokenBlacklisted)
	}
	return nil
}

func toAuthResult(pair *auth.TokenPair, user *UserInfo) *AuthResult {
	return &AuthResult{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn(),
		ExpiresAt:    pair.AccessTokenExpiresAt,
		TokenType:    pair.TokenType,
		User:         user,
	}
}

// mapTokenError converts JWT errors to domain errors
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	default:
		return shared.NewDomainError("INVALID_TOKEN", "Invalid token")
	}
}
