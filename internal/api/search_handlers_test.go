package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchResult struct {
	Total uint64 `json:"total"`
	Hits  []struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Name   string `json:"name"`
		Artist string `json:"artist"`
	} `json:"hits"`
	Facets []struct {
		Value string `json:"value"`
		Count int    `json:"count"`
	} `json:"facets"`
}

func TestSearch_ChartedContentIsIndexed(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "alice@example.com")
	groupID, _ := createGroup(t, server, token, "Indie Heads")

	w := doJSON(t, server, http.MethodPost, "/api/v1/groups/"+groupID+"/charts", token, map[string]any{
		"charted_at": "2026-08-21T00:00:00Z",
		"entries": []map[string]string{
			{"category": "track", "display_name": "Karma Police", "artist_name": "Radiohead"},
			{"category": "album", "display_name": "OK Computer", "artist_name": "Radiohead"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Recording a chart feeds the search index; no reindex required.
	w = doJSON(t, server, http.MethodGet, "/api/v1/search?q=karma", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result searchResult
	decodeData(t, w, &result)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "Karma Police", result.Hits[0].Name)
	assert.Equal(t, "track", result.Hits[0].Type)
	assert.Equal(t, "Radiohead", result.Hits[0].Artist)
}

func TestSearch_TypeFilterParam(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "alice@example.com")
	groupID, _ := createGroup(t, server, token, "Indie Heads")

	w := doJSON(t, server, http.MethodPost, "/api/v1/groups/"+groupID+"/charts", token, map[string]any{
		"entries": []map[string]string{
			{"category": "track", "display_name": "Karma Police", "artist_name": "Radiohead"},
			{"category": "album", "display_name": "OK Computer", "artist_name": "Radiohead"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, server, http.MethodGet, "/api/v1/search?q=radiohead&type=album", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result searchResult
	decodeData(t, w, &result)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "album", result.Hits[0].Type)
}

func TestSearch_UploadedArtistIsIndexed(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	token, _ := registerUser(t, server, "alice@example.com")
	uploadImage(t, server, token, "Sigur Rós")

	w := doJSON(t, server, http.MethodGet, "/api/v1/search?q=sigur", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result searchResult
	decodeData(t, w, &result)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "artist", result.Hits[0].Type)
	assert.Equal(t, "Sigur Rós", result.Hits[0].Name)
}

func TestReindex_AdminOnly(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	adminToken, _ := registerUser(t, server, "admin@example.com")
	memberToken, _ := registerUser(t, server, "bob@example.com")

	w := doJSON(t, server, http.MethodPost, "/api/v1/admin/reindex", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/v1/admin/reindex", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
