package objectstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadPutsObjectAndReturnsPublicURL(t *testing.T) {
	var gotPath, gotAuth, gotUpsert, gotType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotUpsert = r.Header.Get("x-upsert")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewSupabaseStore(srv.URL, "service-key", "uploads")
	url, err := store.Upload(context.Background(), "u1/doc.pdf", []byte("%PDF-"), "application/pdf")

	assert.NoError(t, err)
	assert.Equal(t, "/storage/v1/object/uploads/u1/doc.pdf", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, []byte("%PDF-"), gotBody)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/uploads/u1/doc.pdf", url)
}

func TestUploadEscapesObjectName(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewSupabaseStore(srv.URL, "service-key", "uploads")
	_, err := store.Upload(context.Background(), "u1/my resume.pdf", []byte("x"), "application/pdf")

	assert.NoError(t, err)
	assert.Equal(t, "/storage/v1/object/uploads/u1/my%20resume.pdf", gotPath)
}

func TestUploadSurfacesStorageErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bucket not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	store := NewSupabaseStore(srv.URL, "service-key", "missing")
	_, err := store.Upload(context.Background(), "x", []byte("x"), "text/plain")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestUploadRequiresConfiguration(t *testing.T) {
	store := NewSupabaseStore("", "", "uploads")
	_, err := store.Upload(context.Background(), "x", nil, "text/plain")
	assert.Error(t, err)
}
