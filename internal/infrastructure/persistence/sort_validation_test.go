package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("asc; DROP TABLE users"))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "rent", ValidateSortField("rent", PropertySortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", PropertySortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("tenant_id; --", PropertySortFields, "created_at"))
}
