package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iamatos3/roamer-api/models"
	"github.com/iamatos3/roamer-api/routes"
)

// setupServer builds the real router over a fresh in-memory database.
func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "6000")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))

	return routes.SetupRouter(db), db
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

// registerAndLogin creates an account through the API and returns its bearer
// token and user id.
func registerAndLogin(t *testing.T, r *gin.Engine, email string) (string, uint) {
	t.Helper()
	creds := map[string]interface{}{"credentials": map[string]string{
		"email":                 email,
		"password":              "wanderlust1",
		"password_confirmation": "wanderlust1",
	}}
	w := doJSON(r, http.MethodPost, "/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	login := map[string]interface{}{"credentials": map[string]string{
		"email":    email,
		"password": "wanderlust1",
	}}
	w = doJSON(r, http.MethodPost, "/auth/login", "", login)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	return token, uint(user["id"].(float64))
}

// createPost persists a valid review through the API and returns its id.
func createPost(t *testing.T, r *gin.Engine, token string) uint {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/posts", token, map[string]interface{}{
		"post": map[string]interface{}{
			"title":    "Cafe",
			"location": "NYC",
			"content":  "Great",
			"rating":   5,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	post := body["post"].(map[string]interface{})
	return uint(post["id"].(float64))
}
