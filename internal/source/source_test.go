package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/cobuy/internal/source/local"
	"github.com/timmy/cobuy/internal/source/objectstore"
	"github.com/timmy/cobuy/internal/source/remote"
)

const dataset = "input,target\n1001,1002\n"

type memStore struct {
	objects map[string][]byte
}

func (m *memStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.objects[key]
	return ok, nil
}

func TestFromURI(t *testing.T) {
	store := &memStore{objects: map[string][]byte{}}

	tests := []struct {
		uri    string
		wantID string
		check  func(t *testing.T, s Source)
	}{
		{uri: "s3://seed/pairs.csv", wantID: "s3://seed/pairs.csv", check: func(t *testing.T, s Source) {
			assert.IsType(t, &objectstore.Adapter{}, s)
		}},
		{uri: "https://example.com/pairs.csv", wantID: "https://example.com/pairs.csv", check: func(t *testing.T, s Source) {
			assert.IsType(t, &remote.Adapter{}, s)
		}},
		{uri: "./data/pairs.csv", wantID: "file:./data/pairs.csv", check: func(t *testing.T, s Source) {
			assert.IsType(t, &local.Adapter{}, s)
		}},
		{uri: "file:///tmp/pairs.csv", wantID: "file:/tmp/pairs.csv", check: func(t *testing.T, s Source) {
			assert.IsType(t, &local.Adapter{}, s)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.uri, func(t *testing.T) {
			s, err := FromURI(tc.uri, store)
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, s.GetSourceID())
			tc.check(t, s)
		})
	}
}

func TestFromURI_S3WithoutStorage(t *testing.T) {
	_, err := FromURI("s3://pairs.csv", nil)
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}

func TestLocalAdapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))

	got, err := local.NewAdapter(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dataset, got)

	_, err = local.NewAdapter(filepath.Join(t.TempDir(), "missing.csv")).Load(context.Background())
	assert.ErrorContains(t, err, "not found")
}

func TestRemoteAdapter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pairs.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, dataset)
	}))
	defer srv.Close()

	got, err := remote.NewAdapter(srv.URL+"/pairs.csv", 0).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dataset, got)

	_, err = remote.NewAdapter(srv.URL+"/missing.csv", 0).Load(context.Background())
	assert.ErrorContains(t, err, "status 404")
}

func TestObjectStoreAdapter(t *testing.T) {
	store := &memStore{objects: map[string][]byte{"seed.csv": []byte(dataset)}}

	got, err := objectstore.NewAdapter(store, "seed.csv").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dataset, got)

	_, err = objectstore.NewAdapter(store, "other.csv").Load(context.Background())
	assert.EqualError(t, err, "dataset object not found: other.csv")
}
