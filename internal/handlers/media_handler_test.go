package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

type fakeStorage struct {
	deleted   []string
	deleteErr error
}

func (f *fakeStorage) UploadFile(ctx context.Context, file []byte, filename string, acl types.ObjectCannedACL, contentType string) (string, error) {
	return filename, nil
}

func (f *fakeStorage) DeleteFile(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

func (f *fakeStorage) GetSignedURL(ctx context.Context, path string, duration time.Duration) (string, error) {
	return "https://cdn.test/" + path, nil
}

func (f *fakeStorage) ListKeys(ctx context.Context) ([]string, error) {
	return nil, nil
}

func useStorage(t *testing.T, s StorageHandler) {
	t.Helper()
	prev := GetStorageHandler()
	RegisterStorageHandler(s)
	t.Cleanup(func() { RegisterStorageHandler(prev) })
}

// unreachableDB opens a gorm handle whose queries fail at execution
// time, so every record lookup comes back empty-handed.
func unreachableDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=curugmara dbname=curugmara sslmode=disable"), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	return db
}

func deleteMedia(t *testing.T, db *gorm.DB, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/admin/media/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	h := NewMediaHandler(db)
	require.NoError(t, h.Delete(c))
	return rec
}

func TestMediaDeleteWithoutRecordStillRemovesObject(t *testing.T) {
	// A key with no backing record still gets its object deleted and
	// the call reports success, so retried deletes converge.
	storage := &fakeStorage{}
	useStorage(t, storage)

	rec := deleteMedia(t, unreachableDB(t), "uploads/waterfall.jpg")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"uploads/waterfall.jpg"}, storage.deleted)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Media asset deleted", body["message"])
}

func TestMediaDeleteStorageFailureIsAnError(t *testing.T) {
	storage := &fakeStorage{deleteErr: errors.New("bucket unavailable")}
	useStorage(t, storage)

	rec := deleteMedia(t, unreachableDB(t), "uploads/waterfall.jpg")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to delete media asset", errorMessage(t, rec))
}

func TestMediaDeleteWithoutStorageHandler(t *testing.T) {
	useStorage(t, nil)

	rec := deleteMedia(t, unreachableDB(t), "uploads/waterfall.jpg")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
