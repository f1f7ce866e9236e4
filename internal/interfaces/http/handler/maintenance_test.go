package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	maintenanceapp "github.com/propmanager/backend/internal/application/maintenance"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/interfaces/http/dto"
)

func TestMaintenanceHandler_Create(t *testing.T) {
	env := newTestEnv(t)
	jane := env.createUser("jane@example.com", identity.RoleTenant)
	john := env.createUser("john@example.com", identity.RoleTenant)
	home := env.createProperty("Maple Court 4B", "1200")
	env.letProperty(home, jane)

	t.Run("files a pending request", func(t *testing.T) {
		w := env.request(http.MethodPost, "/maintenance", jane, CreateMaintenanceRequest{
			Title:       "Leaking tap",
			Description: "Kitchen tap drips all night",
			PropertyID:  &home.ID,
		})
		assertStatus(t, w, http.StatusCreated)

		var info maintenanceapp.RequestInfo
		decode(t, w, &info)
		assert.Equal(t, "pending", info.Status)
		assert.Equal(t, "normal", info.Priority)
		assert.Equal(t, jane.ID, info.TenantID)
	})

	t.Run("tenants cannot file for someone else's property", func(t *testing.T) {
		w := env.request(http.MethodPost, "/maintenance", john, CreateMaintenanceRequest{
			Title: "Noise", Description: "Neighbours", PropertyID: &home.ID,
		})
		assertStatus(t, w, http.StatusForbidden)
	})

	t.Run("requires a description", func(t *testing.T) {
		w := env.request(http.MethodPost, "/maintenance", jane, map[string]string{"title": "Broken"})
		assertStatus(t, w, http.StatusBadRequest)
		assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
	})

	t.Run("rejects an unknown priority", func(t *testing.T) {
		w := env.request(http.MethodPost, "/maintenance", jane, CreateMaintenanceRequest{
			Title: "Broken", Description: "Door", Priority: "whenever",
		})
		assertStatus(t, w, http.StatusBadRequest)
	})
}

func TestMaintenanceHandler_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser("admin@example.com", identity.RoleAdmin)
	jane := env.createUser("jane@example.com", identity.RoleTenant)
	john := env.createUser("john@example.com", identity.RoleTenant)

	w := env.request(http.MethodPost, "/maintenance", jane, CreateMaintenanceRequest{
		Title: "Leaking tap", Description: "Kitchen", Priority: "high",
	})
	assertStatus(t, w, http.StatusCreated)
	var created maintenanceapp.RequestInfo
	decode(t, w, &created)
	path := "/maintenance/" + created.ID.String()

	t.Run("visibility", func(t *testing.T) {
		assertStatus(t, env.request(http.MethodGet, path, jane, nil), http.StatusOK)
		assertStatus(t, env.request(http.MethodGet, path, admin, nil), http.StatusOK)
		assertStatus(t, env.request(http.MethodGet, path, john, nil), http.StatusForbidden)
		assertStatus(t, env.request(http.MethodGet, "/maintenance/"+uuid.NewString(), admin, nil), http.StatusNotFound)

		var list []maintenanceapp.RequestInfo
		decode(t, env.request(http.MethodGet, "/maintenance", john, nil), &list)
		assert.Empty(t, list)
		decode(t, env.request(http.MethodGet, "/maintenance", admin, nil), &list)
		assert.Len(t, list, 1)
	})

	t.Run("moves through its statuses", func(t *testing.T) {
		w := env.request(http.MethodPut, path, admin, UpdateMaintenanceStatusRequest{Status: "in-progress"})
		assertStatus(t, w, http.StatusOK)

		w = env.request(http.MethodPut, path, admin, UpdateMaintenanceStatusRequest{Status: "completed"})
		assertStatus(t, w, http.StatusOK)
		var info maintenanceapp.RequestInfo
		decode(t, w, &info)
		assert.Equal(t, "completed", info.Status)
		require.NotNil(t, info.ResolvedAt)
	})

	t.Run("a completed request cannot reopen", func(t *testing.T) {
		w := env.request(http.MethodPut, path, admin, UpdateMaintenanceStatusRequest{Status: "pending"})
		assertStatus(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("filters by status", func(t *testing.T) {
		var list []maintenanceapp.RequestInfo
		decode(t, env.request(http.MethodGet, "/maintenance?status=completed", jane, nil), &list)
		assert.Len(t, list, 1)
		decode(t, env.request(http.MethodGet, "/maintenance?status=pending", jane, nil), &list)
		assert.Empty(t, list)

		assertStatus(t, env.request(http.MethodGet, "/maintenance?status=closed", jane, nil), http.StatusBadRequest)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		w := env.request(http.MethodPut, path, admin, UpdateMaintenanceStatusRequest{Status: "done"})
		assertStatus(t, w, http.StatusBadRequest)
	})
}
