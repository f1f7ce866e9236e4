package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appidentity "github.com/propmanager/backend/internal/application/identity"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/interfaces/http/dto"
)

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("creates a tenant account and signs it in", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.request(http.MethodPost, "/auth/signup", nil, SignupRequest{
			Email:     "Jane@Example.com",
			Password:  testPassword,
			FirstName: "Jane",
			LastName:  "Doe",
		})
		assertStatus(t, w, http.StatusCreated)

		var result appidentity.AuthResult
		resp := decode(t, w, &result)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, result.Token)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		require.NotNil(t, result.User)
		assert.Equal(t, "jane@example.com", result.User.Email)
		assert.Equal(t, identity.RoleTenant.String(), result.User.Role)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		env.createUser("jane@example.com", identity.RoleTenant)

		w := env.request(http.MethodPost, "/auth/signup", nil, SignupRequest{
			Email: "jane@example.com", Password: testPassword, FirstName: "Jane", LastName: "Doe",
		})
		assertStatus(t, w, http.StatusConflict)
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.request(http.MethodPost, "/auth/signup", nil, SignupRequest{
			Email: "jane@example.com", Password: "short", FirstName: "Jane", LastName: "Doe",
		})
		assertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("reports missing fields", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.request(http.MethodPost, "/auth/signup", nil, map[string]string{"email": "jane@example.com"})
		assertStatus(t, w, http.StatusBadRequest)

		resp := decode(t, w, nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.Details)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.request(http.MethodPost, "/auth/signup", nil, `{"email": }`)
		assertStatus(t, w, http.StatusBadRequest)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("admin@example.com", identity.RoleAdmin)

	t.Run("signs in with valid credentials", func(t *testing.T) {
		w := env.request(http.MethodPost, "/auth/login", nil, LoginRequest{Email: "ADMIN@example.com", Password: testPassword})
		assertStatus(t, w, http.StatusOK)

		var result appidentity.AuthResult
		decode(t, w, &result)
		assert.NotEmpty(t, result.Token)
		require.NotNil(t, result.User)
		assert.Equal(t, "admin", result.User.Role)
		assert.NotNil(t, result.User.LastLoginAt)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		w := env.request(http.MethodPost, "/auth/login", nil, LoginRequest{Email: "admin@example.com", Password: "Wrong1234"})
		assertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("rejects an unknown email the same way", func(t *testing.T) {
		w := env.request(http.MethodPost, "/auth/login", nil, LoginRequest{Email: "nobody@example.com", Password: testPassword})
		assertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("requires email and password", func(t *testing.T) {
		w := env.request(http.MethodPost, "/auth/login", nil, LoginRequest{Email: "admin@example.com"})
		assertStatus(t, w, http.StatusBadRequest)
	})
}

func TestAuthHandler_VerifyAndMe(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("jane@example.com", identity.RoleTenant)

	t.Run("verify accepts a valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
		req.Header.Set("Authorization", "Bearer "+env.tokenFor(user))
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)
		assertStatus(t, w, http.StatusOK)

		var result VerifyResponse
		decode(t, w, &result)
		assert.True(t, result.Valid)
		require.NotNil(t, result.User)
		assert.Equal(t, user.ID, result.User.ID)
	})

	t.Run("verify rejects a missing token", func(t *testing.T) {
		w := env.request(http.MethodGet, "/auth/verify", nil, nil)
		assertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("me returns the caller", func(t *testing.T) {
		w := env.request(http.MethodGet, "/auth/me", user, nil)
		assertStatus(t, w, http.StatusOK)

		var info appidentity.UserInfo
		decode(t, w, &info)
		assert.Equal(t, "jane@example.com", info.Email)
	})

	t.Run("me requires a token", func(t *testing.T) {
		w := env.request(http.MethodGet, "/auth/me", nil, nil)
		assertStatus(t, w, http.StatusUnauthorized)
		assert.Equal(t, dto.CodeMissingToken, errorCode(t, w))
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("jane@example.com", identity.RoleTenant)

	w := env.request(http.MethodPost, "/auth/login", nil, LoginRequest{Email: "jane@example.com", Password: testPassword})
	assertStatus(t, w, http.StatusOK)
	var login appidentity.AuthResult
	decode(t, w, &login)

	w = env.request(http.MethodPost, "/auth/refresh", nil, RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assertStatus(t, w, http.StatusOK)
	var refreshed appidentity.AuthResult
	decode(t, w, &refreshed)
	assert.NotEmpty(t, refreshed.Token)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	t.Run("the old refresh token is spent", func(t *testing.T) {
		w := env.request(http.MethodPost, "/auth/refresh", nil, RefreshTokenRequest{RefreshToken: login.RefreshToken})
		assertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("an access token is not a refresh token", func(t *testing.T) {
		w := env.request(http.MethodPost, "/auth/refresh", nil, RefreshTokenRequest{RefreshToken: login.Token})
		assertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("jane@example.com", identity.RoleTenant)
	token := env.tokenFor(user)

	send := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)
		return w
	}

	w := send(http.MethodPost, "/auth/logout")
	assertStatus(t, w, http.StatusOK)
	var msg MessageResponse
	decode(t, w, &msg)
	assert.Equal(t, "Logged out successfully", msg.Message)

	w = send(http.MethodGet, "/auth/me")
	assertStatus(t, w, http.StatusUnauthorized)
	assert.Equal(t, dto.CodeInvalidToken, errorCode(t, w))
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("jane@example.com", identity.RoleTenant)

	phone := "+1 555 0100"
	first := "Janet"
	w := env.request(http.MethodPut, "/auth/profile", user, UpdateProfileRequest{FirstName: &first, Phone: &phone})
	assertStatus(t, w, http.StatusOK)

	var info appidentity.UserInfo
	decode(t, w, &info)
	assert.Equal(t, "Janet", info.FirstName)
	assert.Equal(t, "User", info.LastName)
	assert.Equal(t, phone, info.Phone)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("jane@example.com", identity.RoleTenant)

	t.Run("rejects a wrong current password", func(t *testing.T) {
		w := env.request(http.MethodPost, "/auth/change-password", user, ChangePasswordRequest{
			CurrentPassword: "Wrong1234", NewPassword: "N3wPassword",
		})
		assert.GreaterOrEqual(t, w.Code, http.StatusBadRequest)
		assert.Less(t, w.Code, http.StatusInternalServerError)
	})

	t.Run("requires the new password", func(t *testing.T) {
		w := env.request(http.MethodPost, "/auth/change-password", user, ChangePasswordRequest{CurrentPassword: testPassword})
		assertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("changes the password", func(t *testing.T) {
		w := env.request(http.MethodPost, "/auth/change-password", user, ChangePasswordRequest{
			CurrentPassword: testPassword, NewPassword: "N3wPassword",
		})
		assertStatus(t, w, http.StatusOK)

		w = env.request(http.MethodPost, "/auth/login", nil, LoginRequest{Email: "jane@example.com", Password: "N3wPassword"})
		assertStatus(t, w, http.StatusOK)
	})
}
