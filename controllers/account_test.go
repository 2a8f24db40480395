package controllers_test

import (
	"net/http"
	"testing"

	"go-shop/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDuplicateEmail(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"email":    "a@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"email":    "a@example.com",
		"password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/register", map[string]string{"email": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/register", map[string]string{"password": "secret"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"email":    "b@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email":    "b@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email":    "b@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// The stored record comes back as-is, password included
	var body struct {
		User models.User `json:"user"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "b@example.com", body.User.Email)
	assert.Equal(t, "secret", body.User.Password)
	assert.False(t, body.User.ID.IsZero())
}

func TestChangePassword(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/register", map[string]string{
		"email":    "c@example.com",
		"password": "old-secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/change-password", map[string]string{
		"email":       "nobody@example.com",
		"oldPassword": "old-secret",
		"newPassword": "new-secret",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/change-password", map[string]string{
		"email":       "c@example.com",
		"oldPassword": "wrong",
		"newPassword": "new-secret",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/change-password", map[string]string{
		"email":       "c@example.com",
		"oldPassword": "old-secret",
		"newPassword": "new-secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email":    "c@example.com",
		"password": "old-secret",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email":    "c@example.com",
		"password": "new-secret",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
