package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/validator"
)

// postContact submits a contact form payload and returns the recorded
// response. Validation rejects these payloads before the handler ever
// touches the database.
func postContact(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = validator.NewValidator()

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewContactHandler(nil)
	require.NoError(t, h.Create(c))
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestContactCreateInvalidEmail(t *testing.T) {
	rec := postContact(t, `{
		"name": "Ayu",
		"email": "not-an-email",
		"subject": "Hello",
		"message": "Is the trail open during rainy season?"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email address", errorMessage(t, rec))
}

func TestContactCreateMissingField(t *testing.T) {
	rec := postContact(t, `{
		"name": "Ayu",
		"email": "ayu@example.com",
		"message": "Is the trail open during rainy season?"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "subject is required", errorMessage(t, rec))
}

func TestContactCreateShortName(t *testing.T) {
	rec := postContact(t, `{
		"name": "A",
		"email": "ayu@example.com",
		"subject": "Hello",
		"message": "Is the trail open during rainy season?"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is too short", errorMessage(t, rec))
}

func TestContactCreateMalformedBody(t *testing.T) {
	rec := postContact(t, `{"name": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", errorMessage(t, rec))
}
