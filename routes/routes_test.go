package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadPath builds the request path the media store would put in a URL for
// a file inside dir.
func uploadPath(dir, name string) string {
	return "/" + strings.Trim(filepath.ToSlash(dir), "/") + "/" + name
}

func TestUploadsServedFromConfiguredDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media", "uploads")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shoe.png"), []byte("payload"), 0o644))

	router := mux.NewRouter()
	RegisterRoutes(router, "/api/v1", dir, Controllers{})

	req := httptest.NewRequest(http.MethodGet, uploadPath(dir, "shoe.png"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "payload", rec.Body.String())
}

func TestUploadsMountMissesOtherPaths(t *testing.T) {
	dir := t.TempDir()
	router := mux.NewRouter()
	RegisterRoutes(router, "/api/v1", dir, Controllers{})

	req := httptest.NewRequest(http.MethodGet, uploadPath(dir, "missing.png"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
