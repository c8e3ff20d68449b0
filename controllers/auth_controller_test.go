package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r, _ := setupServer(t)

	w := doJSON(r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"credentials": map[string]string{
			"email":                 "New@Roamer.dev",
			"password":              "wanderlust1",
			"password_confirmation": "wanderlust1",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "new@roamer.dev", user["email"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegisterValidation(t *testing.T) {
	r, _ := setupServer(t)

	cases := []struct {
		name  string
		creds map[string]string
	}{
		{"missing email", map[string]string{"password": "wanderlust1", "password_confirmation": "wanderlust1"}},
		{"invalid email", map[string]string{"email": "nope", "password": "wanderlust1", "password_confirmation": "wanderlust1"}},
		{"short password", map[string]string{"email": "a@b.c", "password": "short", "password_confirmation": "short"}},
		{"mismatch", map[string]string{"email": "a@b.c", "password": "wanderlust1", "password_confirmation": "wanderlust2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/auth/register", "", map[string]interface{}{"credentials": tc.creds})
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := setupServer(t)
	registerAndLogin(t, r, "dup@roamer.dev")

	w := doJSON(r, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"credentials": map[string]string{
			"email":                 "dup@roamer.dev",
			"password":              "wanderlust1",
			"password_confirmation": "wanderlust1",
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := setupServer(t)
	registerAndLogin(t, r, "u@roamer.dev")

	w := doJSON(r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"credentials": map[string]string{"email": "u@roamer.dev", "password": "not-the-one"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"credentials": map[string]string{"email": "nobody@roamer.dev", "password": "whatever12"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	r, _ := setupServer(t)
	token, userID := registerAndLogin(t, r, "me@roamer.dev")

	w := doJSON(r, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, float64(userID), user["id"])
	assert.Equal(t, "me@roamer.dev", user["email"])
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _ := setupServer(t)
	token, _ := registerAndLogin(t, r, "bye@roamer.dev")

	w := doJSON(r, http.MethodDelete, "/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// the old token no longer resolves to a principal
	w = doJSON(r, http.MethodGet, "/posts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePassword(t *testing.T) {
	r, _ := setupServer(t)
	token, _ := registerAndLogin(t, r, "rotate@roamer.dev")

	w := doJSON(r, http.MethodPatch, "/auth/password", token, map[string]interface{}{
		"passwords": map[string]string{"old": "wrong-old", "new": "freshpass1"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPatch, "/auth/password", token, map[string]interface{}{
		"passwords": map[string]string{"old": "wanderlust1", "new": "freshpass1"},
	})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	// rotation invalidates the current session
	w = doJSON(r, http.MethodGet, "/posts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// and the new credential works
	w = doJSON(r, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"credentials": map[string]string{"email": "rotate@roamer.dev", "password": "freshpass1"},
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
