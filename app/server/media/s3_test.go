package media

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type s3Request struct {
	method string
	path   string
}

func newFakeS3(t *testing.T) (*httptest.Server, func() []s3Request) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []s3Request
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, s3Request{method: r.Method, path: r.URL.Path})
		mu.Unlock()

		switch r.Method {
		case http.MethodPut:
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)

	return srv, func() []s3Request {
		mu.Lock()
		defer mu.Unlock()
		return append([]s3Request(nil), requests...)
	}
}

func TestS3StoreUploadAndDelete(t *testing.T) {
	srv, requests := newFakeS3(t)
	ctx := context.Background()

	store, err := NewS3Store(ctx, S3Options{
		Region:    "us-east-1",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Endpoint:  srv.URL,
		Bucket:    "college",
		PublicURL: "https://cdn.example.edu/college/",
		Folder:    "college-site/events",
	})
	require.NoError(t, err)

	obj, err := store.Upload(ctx, &Upload{
		Filename:    "campus.png",
		ContentType: "image/png",
		Size:        4,
		Body:        bytes.NewReader([]byte{0x89, 'P', 'N', 'G'}),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(obj.Ref, "college-site/events/"))
	assert.True(t, strings.HasSuffix(obj.Ref, ".png"))
	assert.Equal(t, "https://cdn.example.edu/college/"+obj.Ref, obj.URL)

	require.NoError(t, store.Delete(ctx, obj.Ref))

	got := requests()
	require.Len(t, got, 2)
	assert.Equal(t, http.MethodPut, got[0].method)
	assert.Equal(t, "/college/"+obj.Ref, got[0].path)
	assert.Equal(t, http.MethodDelete, got[1].method)
	assert.Equal(t, "/college/"+obj.Ref, got[1].path)
}
