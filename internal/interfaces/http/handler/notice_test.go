package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	noticeapp "github.com/propmanager/backend/internal/application/notice"
	"github.com/propmanager/backend/internal/domain/identity"
)

func TestNoticeHandler(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser("admin@example.com", identity.RoleAdmin)
	jane := env.createUser("jane@example.com", identity.RoleTenant)

	w := env.request(http.MethodPost, "/notices", admin, CreateNoticeRequest{
		Title: "Water shut-off", Message: "Tuesday 9am to noon", Priority: "high",
	})
	assertStatus(t, w, http.StatusCreated)
	var water noticeapp.NoticeInfo
	decode(t, w, &water)
	assert.Equal(t, "high", water.Priority)
	assert.Equal(t, admin.ID, water.CreatedBy)
	assert.False(t, water.IsRead)

	w = env.request(http.MethodPost, "/notices", admin, CreateNoticeRequest{Title: "Bins", Message: "Moved to Thursday"})
	assertStatus(t, w, http.StatusCreated)
	var bins noticeapp.NoticeInfo
	decode(t, w, &bins)
	assert.Equal(t, "normal", bins.Priority)

	t.Run("nothing read yet", func(t *testing.T) {
		w := env.request(http.MethodGet, "/notices/read-status", jane, nil)
		assertStatus(t, w, http.StatusOK)
		assert.JSONEq(t, `[]`, string(rawData(t, w)))
	})

	t.Run("marking read is idempotent", func(t *testing.T) {
		w := env.request(http.MethodPost, "/notices/"+water.ID.String()+"/read", jane, nil)
		assertStatus(t, w, http.StatusOK)
		var first MarkReadResponse
		decode(t, w, &first)
		assert.True(t, first.Marked)
		assert.Equal(t, "Notice marked as read", first.Message)

		w = env.request(http.MethodPost, "/notices/"+water.ID.String()+"/read", jane, nil)
		assertStatus(t, w, http.StatusOK)
		var second MarkReadResponse
		decode(t, w, &second)
		assert.False(t, second.Marked)
		assert.Equal(t, "Already marked as read", second.Message)
	})

	t.Run("list flags read notices per caller", func(t *testing.T) {
		var notices []noticeapp.NoticeInfo
		decode(t, env.request(http.MethodGet, "/notices", jane, nil), &notices)
		require.Len(t, notices, 2)
		for _, n := range notices {
			assert.Equal(t, n.ID == water.ID, n.IsRead, n.Title)
		}

		decode(t, env.request(http.MethodGet, "/notices", admin, nil), &notices)
		for _, n := range notices {
			assert.False(t, n.IsRead)
		}

		var ids []uuid.UUID
		decode(t, env.request(http.MethodGet, "/notices/read-status", jane, nil), &ids)
		assert.Equal(t, []uuid.UUID{water.ID}, ids)
	})

	t.Run("unknown notice", func(t *testing.T) {
		w := env.request(http.MethodPost, "/notices/"+uuid.NewString()+"/read", jane, nil)
		assertStatus(t, w, http.StatusNotFound)
	})

	t.Run("deleting drops the notice and its read markers", func(t *testing.T) {
		w := env.request(http.MethodDelete, "/notices/"+water.ID.String(), admin, nil)
		assertStatus(t, w, http.StatusOK)

		var ids []uuid.UUID
		decode(t, env.request(http.MethodGet, "/notices/read-status", jane, nil), &ids)
		assert.Empty(t, ids)

		w = env.request(http.MethodDelete, "/notices/"+water.ID.String(), admin, nil)
		assertStatus(t, w, http.StatusNotFound)
	})

	t.Run("requires a message", func(t *testing.T) {
		w := env.request(http.MethodPost, "/notices", admin, map[string]string{"title": "Empty"})
		assertStatus(t, w, http.StatusBadRequest)
	})
}
