package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveBlankFields(t *testing.T) {
	payload := map[string]interface{}{
		"title":  "",
		"rating": float64(3),
	}

	cleaned := RemoveBlankFields(payload)

	assert.Equal(t, map[string]interface{}{"rating": float64(3)}, cleaned)
	// input is untouched
	assert.Contains(t, payload, "title")
}

func TestRemoveBlankFieldsKeepsNonStrings(t *testing.T) {
	payload := map[string]interface{}{
		"rating":   float64(0),
		"flag":     false,
		"content":  "still here",
		"location": "",
		"extra":    nil,
	}

	cleaned := RemoveBlankFields(payload)

	assert.Len(t, cleaned, 4)
	assert.NotContains(t, cleaned, "location")
	assert.Equal(t, float64(0), cleaned["rating"])
	assert.Equal(t, false, cleaned["flag"])
}

func TestRemoveBlankFieldsEmptyPayload(t *testing.T) {
	assert.Empty(t, RemoveBlankFields(map[string]interface{}{}))
}
