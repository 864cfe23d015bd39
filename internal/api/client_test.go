package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glare-project/glare/internal/api"
	"github.com/glare-project/glare/pkg/errclass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_OriginValidation(t *testing.T) {
	_, err := api.NewClient("https://glare.example.com/", "")
	assert.NoError(t, err)

	for _, origin := range []string{"", "ftp://x", "glare.example.com", "://bad"} {
		_, err := api.NewClient(origin, "")
		assert.Error(t, err, origin)
		assert.True(t, errors.Is(err, errclass.ErrOriginInvalid), origin)
	}
}

func TestStreamURL(t *testing.T) {
	c, err := api.NewClient("https://glare.example.com", "")
	require.NoError(t, err)
	u, err := c.StreamURL("repo-1")
	require.NoError(t, err)
	assert.Equal(t, "wss://glare.example.com/repositories/repo-1/snapshot-ws", u)

	c, err = api.NewClient("http://127.0.0.1:8080", "")
	require.NoError(t, err)
	u, err = c.StreamURL("repo 2")
	require.NoError(t, err)
	assert.Equal(t, "ws://127.0.0.1:8080/repositories/repo%202/snapshot-ws", u)
}

func TestListSnapshots_PostsAndParses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repositories/r1/snapshots", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"snapshots":[{"id":"s1","time":"2024-03-05T10:00:00Z"}]}`))
	}))
	defer srv.Close()

	c, err := api.NewClient(srv.URL, "tok")
	require.NoError(t, err)

	records, err := c.ListSnapshots(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "s1", records[0].ID)
}

func TestListAttributions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repositories/r1/snapshot-workers", r.URL.Path)
		w.Write([]byte(`{"snapshots":[{"snapshotId":"s1","workerIds":["w1"],"runCount":3}]}`))
	}))
	defer srv.Close()

	c, err := api.NewClient(srv.URL, "")
	require.NoError(t, err)

	attrs, err := c.ListAttributions(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, attrs, 1)
	assert.Equal(t, "s1", attrs[0].SnapshotID)
	assert.Equal(t, 3, attrs[0].RunCount)
}

func TestListActivities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repositories/r1/snapshot-activity", r.URL.Path)
		w.Write([]byte(`{"activities":[{"id":"a1","kind":"running","bytesDone":10,"totalBytes":100}]}`))
	}))
	defer srv.Close()

	c, err := api.NewClient(srv.URL, "")
	require.NoError(t, err)

	acts, err := c.ListActivities(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, uint64(10), acts[0].BytesDone)
}

func TestListSnapshotFiles_WorkerRouting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repositories/r1/snapshot/files", r.URL.Path)
		var req map[string]any
		require.NoError(t, jsonDecode(r, &req))
		assert.Equal(t, "snap-1", req["snapshot"])
		assert.Equal(t, "w1", req["workerId"])
		w.Write([]byte(`[{"path":"/srv/a.txt","type":"file","size":1}]`))
	}))
	defer srv.Close()

	c, err := api.NewClient(srv.URL, "")
	require.NoError(t, err)

	entries, err := c.ListSnapshotFiles(context.Background(), "r1", "snap-1", "w1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestErrorClassification_RepoIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"Message: index is inconsistent, please run repair index"}`))
	}))
	defer srv.Close()

	c, err := api.NewClient(srv.URL, "")
	require.NoError(t, err)

	_, err = c.ListSnapshotFiles(context.Background(), "r1", "snap-1", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrRepoIndex))

	var gerr *errclass.GlareError
	require.True(t, errors.As(err, &gerr))
	assert.NotEmpty(t, gerr.Hint)
}

func TestErrorClassification_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no matching snapshot found", http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := api.NewClient(srv.URL, "")
	require.NoError(t, err)

	_, err = c.ListSnapshotFiles(context.Background(), "r1", "missing", "")
	assert.True(t, errors.Is(err, errclass.ErrSnapshotNotFound))
}

func TestErrorClassification_Transport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	srv.Close() // refuse connections

	c, err := api.NewClient(srv.URL, "")
	require.NoError(t, err)

	_, err = c.ListSnapshots(context.Background(), "r1")
	assert.True(t, errors.Is(err, errclass.ErrTransport))
}

func jsonDecode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
