package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthOf(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestArchiveURL(t *testing.T) {
	url := ArchiveURL("https://data.police.uk/data/archive", "cambridgeshire", monthOf(2024, time.March))
	assert.Equal(t, "https://data.police.uk/data/archive/2024-03/2024-03-cambridgeshire-street.csv", url)
}

func TestArchiveFileName(t *testing.T) {
	assert.Equal(t, "2023-11-cambridgeshire-street.csv", ArchiveFileName("cambridgeshire", monthOf(2023, time.November)))
}

func TestFetchMonths(t *testing.T) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		w.Write([]byte("Crime ID,Month\n"))
	}))
	defer srv.Close()

	c := New(Options{RequestsPerSec: 1000})
	dataDir := t.TempDir()

	paths, err := c.FetchMonths(context.Background(), srv.URL, "cambridgeshire", dataDir,
		monthOf(2024, time.January), monthOf(2024, time.February))
	require.NoError(t, err)
	require.Len(t, paths, 2)

	assert.Equal(t, []string{
		"/2024-01/2024-01-cambridgeshire-street.csv",
		"/2024-02/2024-02-cambridgeshire-street.csv",
	}, requested)

	for _, p := range paths {
		data, readErr := os.ReadFile(p)
		require.NoError(t, readErr)
		assert.Equal(t, "Crime ID,Month\n", string(data))
	}
	assert.Equal(t, filepath.Join(dataDir, "2024-01", "2024-01-cambridgeshire-street.csv"), paths[0])
}

func TestFetchMonths_EmptyRange(t *testing.T) {
	c := New(Options{})
	_, err := c.FetchMonths(context.Background(), "http://unused", "cambridgeshire", t.TempDir(),
		monthOf(2024, time.March), monthOf(2024, time.January))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty month range")
}

func TestDownload_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(Options{RequestsPerSec: 1000})
	_, err := c.Download(context.Background(), srv.URL+"/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestDownload_RetriesServerErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(Options{RequestsPerSec: 1000, MaxRetries: 2})
	body, err := c.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	defer body.Close()
	assert.Equal(t, 2, hits)
}
