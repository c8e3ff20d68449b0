package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnsureFound(t *testing.T) {
	assert.NoError(t, EnsureFound(nil, "post", "1"))

	err := EnsureFound(gorm.ErrRecordNotFound, "post", "42")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Message, "post 42")

	other := errors.New("connection reset")
	assert.Equal(t, other, EnsureFound(other, "post", "1"))
}

func TestEnsureOwnership(t *testing.T) {
	assert.NoError(t, EnsureOwnership(7, 7, "post"))

	err := EnsureOwnership(7, 8, "post")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}
