package util_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"videotube-server/internal/util"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestS3Uploader_UploadFileAsync(t *testing.T) {
	var gotBody, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	path := writeTempFile(t, "clip.mp4", "video-bytes")
	uploader := util.NewS3Uploader(5 * time.Second)

	err := <-uploader.UploadFileAsync(context.Background(), server.URL, path, "")
	uploader.Wait()

	assert.NoError(t, err)
	assert.Equal(t, "video-bytes", gotBody)
	assert.Equal(t, "video/mp4", gotType)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "временный файл должен быть удален")
}

func TestS3Uploader_UploadFileAsync_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("SignatureDoesNotMatch"))
	}))
	defer server.Close()

	path := writeTempFile(t, "clip.webm", "video-bytes")
	uploader := util.NewS3Uploader(5 * time.Second)

	err := <-uploader.UploadFileAsync(context.Background(), server.URL, path, "video/webm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "статус 403")
	assert.Contains(t, err.Error(), "SignatureDoesNotMatch")
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", util.ContentTypeFor("avatar.PNG"))
	assert.Equal(t, "video/quicktime", util.ContentTypeFor("clip.mov"))
	assert.Equal(t, "application/octet-stream", util.ContentTypeFor("notes"))
}
