package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createGroup makes a group through the API and returns its ID and slug.
func createGroup(t *testing.T, server *Server, token, name string) (groupID, slug string) {
	t.Helper()

	w := doJSON(t, server, http.MethodPost, "/api/v1/groups/", token, map[string]string{
		"name": name,
	})
	require.Equal(t, http.StatusCreated, w.Code, "create group failed: %s", w.Body.String())

	var group struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	decodeData(t, w, &group)
	return group.ID, group.Slug
}

func TestCreateAndGetGroup(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token, userID := registerUser(t, server, "alice@example.com")
	groupID, slug := createGroup(t, server, token, "Indie Heads")

	assert.Equal(t, "indie-heads", slug)

	// Lookup by ID and by slug both resolve.
	for _, ref := range []string{groupID, slug} {
		w := doJSON(t, server, http.MethodGet, "/api/v1/groups/"+ref, "", nil)
		require.Equal(t, http.StatusOK, w.Code, "lookup by %q failed", ref)

		var group struct {
			ID      string `json:"id"`
			OwnerID string `json:"owner_id"`
		}
		decodeData(t, w, &group)
		assert.Equal(t, groupID, group.ID)
		assert.Equal(t, userID, group.OwnerID)
	}

	w := doJSON(t, server, http.MethodGet, "/api/v1/groups/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var groups []struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &groups)
	assert.Len(t, groups, 1)
}

func TestCreateGroup_RequiresAuth(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := doJSON(t, server, http.MethodPost, "/api/v1/groups/", "", map[string]string{
		"name": "Indie Heads",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecordChartAndCatalog(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "alice@example.com")
	groupID, _ := createGroup(t, server, token, "Indie Heads")

	record := func(chartedAt time.Time, entries []map[string]string) {
		t.Helper()
		w := doJSON(t, server, http.MethodPost, "/api/v1/groups/"+groupID+"/charts", token, map[string]any{
			"charted_at": chartedAt.Format(time.RFC3339),
			"entries":    entries,
		})
		require.Equal(t, http.StatusCreated, w.Code, "record failed: %s", w.Body.String())
	}

	base := time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC)
	record(base, []map[string]string{
		{"category": "artist", "display_name": "Radiohead"},
		{"category": "track", "display_name": "karma police", "artist_name": "Radiohead"},
	})
	record(base.AddDate(0, 0, 7), []map[string]string{
		{"category": "track", "display_name": "Karma Police", "artist_name": "Radiohead"},
		{"category": "album", "display_name": "OK Computer", "artist_name": "Radiohead"},
	})

	w := doJSON(t, server, http.MethodGet, "/api/v1/groups/"+groupID+"/catalog", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var catalog struct {
		Artists []struct {
			DisplayName string `json:"display_name"`
		} `json:"artists"`
		Tracks []struct {
			DisplayName string `json:"display_name"`
		} `json:"tracks"`
		Albums []struct {
			DisplayName string `json:"display_name"`
		} `json:"albums"`
	}
	decodeData(t, w, &catalog)

	// The two chartings of the same track collapse to one record with the
	// most recent spelling.
	require.Len(t, catalog.Tracks, 1)
	assert.Equal(t, "Karma Police", catalog.Tracks[0].DisplayName)
	assert.Len(t, catalog.Artists, 1)
	assert.Len(t, catalog.Albums, 1)
}

func TestCatalog_FilterAndSince(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "alice@example.com")
	groupID, _ := createGroup(t, server, token, "Indie Heads")

	w := doJSON(t, server, http.MethodPost, "/api/v1/groups/"+groupID+"/charts", token, map[string]any{
		"charted_at": "2026-08-21T00:00:00Z",
		"entries": []map[string]string{
			{"category": "track", "display_name": "Karma Police", "artist_name": "Radiohead"},
			{"category": "track", "display_name": "Fifteen Step", "artist_name": "Radiohead"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Substring filter matches display names only.
	w = doJSON(t, server, http.MethodGet, "/api/v1/groups/"+groupID+"/catalog?q=karma", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var catalog struct {
		Tracks []struct {
			DisplayName string `json:"display_name"`
		} `json:"tracks"`
	}
	decodeData(t, w, &catalog)
	require.Len(t, catalog.Tracks, 1)
	assert.Equal(t, "Karma Police", catalog.Tracks[0].DisplayName)

	// A since bound after the chart date excludes everything.
	w = doJSON(t, server, http.MethodGet, "/api/v1/groups/"+groupID+"/catalog?since=2027-01-01T00:00:00Z", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &catalog)
	assert.Empty(t, catalog.Tracks)

	// Malformed since is rejected.
	w = doJSON(t, server, http.MethodGet, "/api/v1/groups/"+groupID+"/catalog?since=yesterday", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogSearch_BlankQueryShortCircuits(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "alice@example.com")
	groupID, _ := createGroup(t, server, token, "Indie Heads")

	w := doJSON(t, server, http.MethodPost, "/api/v1/groups/"+groupID+"/charts", token, map[string]any{
		"entries": []map[string]string{
			{"category": "track", "display_name": "Karma Police", "artist_name": "Radiohead"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var catalog struct {
		Tracks []struct {
			DisplayName string `json:"display_name"`
		} `json:"tracks"`
	}

	// No query: empty buckets, even though the group has history.
	w = doJSON(t, server, http.MethodGet, "/api/v1/groups/"+groupID+"/catalog/search", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &catalog)
	assert.Empty(t, catalog.Tracks)

	// Blank query on an unknown group is still OK, not NotFound.
	w = doJSON(t, server, http.MethodGet, "/api/v1/groups/group-missing/catalog/search", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A real query goes through the catalog.
	w = doJSON(t, server, http.MethodGet, "/api/v1/groups/"+groupID+"/catalog/search?q=karma", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &catalog)
	require.Len(t, catalog.Tracks, 1)
	assert.Equal(t, "Karma Police", catalog.Tracks[0].DisplayName)
}

func TestRecordChart_InvalidEntries(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "alice@example.com")
	groupID, _ := createGroup(t, server, token, "Indie Heads")

	w := doJSON(t, server, http.MethodPost, "/api/v1/groups/"+groupID+"/charts", token, map[string]any{
		"entries": []map[string]string{
			{"category": "podcast", "display_name": "Some Show"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordChart_UnknownGroup(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "alice@example.com")

	w := doJSON(t, server, http.MethodPost, "/api/v1/groups/group-missing/charts", token, map[string]any{
		"entries": []map[string]string{
			{"category": "artist", "display_name": "Radiohead"},
		},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
