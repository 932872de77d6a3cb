package integration

import (
	"encoding/csv"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatioAndTop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	leader := "grant-a-" + uuid.NewString()
	runnerUp := "grant-b-" + uuid.NewString()

	for _, r := range []string{"r1", "r2", "r3"} {
		resp := castVote(t, app, leader, r, "like")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	resp := castVote(t, app, leader, "r4", "dislike")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = castVote(t, app, runnerUp, "r1", "like")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var ratio map[string]any
	getJSON(t, app, "/votes/"+leader+"/ratio", &ratio)
	assert.Equal(t, float64(3), ratio["likes"])
	assert.Equal(t, float64(1), ratio["dislikes"])
	assert.InDelta(t, 75.0, ratio["like_pct"].(float64), 0.01)
	assert.InDelta(t, 25.0, ratio["dislike_pct"].(float64), 0.01)

	var ranking []map[string]any
	getJSON(t, app, "/grants/top?limit=2", &ranking)
	require.Len(t, ranking, 2)
	assert.Equal(t, leader, ranking[0]["grant_id"])
	assert.Equal(t, runnerUp, ranking[1]["grant_id"])
}

func TestResearcherSummaryAndTrend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	researcher := "Zeevi, Gil"
	g1 := "grant-" + uuid.NewString()
	g2 := "grant-" + uuid.NewString()

	resp := castVote(t, app, g1, researcher, "like")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = castVote(t, app, g2, researcher, "dislike")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var summary map[string]any
	getJSON(t, app, "/researchers/"+url.PathEscape(researcher)+"/summary", &summary)
	assert.Equal(t, float64(2), summary["total_votes"])
	assert.Equal(t, float64(1), summary["likes"])
	assert.Equal(t, float64(1), summary["dislikes"])
	assert.Len(t, summary["recent_votes"], 2)

	// Both votes were written today, so the trend has a single bucket.
	var trend []map[string]any
	getJSON(t, app, "/votes/"+g1+"/trend", &trend)
	require.Len(t, trend, 1)
	assert.Equal(t, float64(1), trend[0]["likes"])
}

func TestExportCSVEscapesCommas(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	grantID := "grant-" + uuid.NewString()
	resp := castVote(t, app, grantID, "Zeevi, Gil", "like")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := app.Client.Get(app.Server.URL + "/export/csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Zeevi, Gil", records[1][1], "comma-bearing researcher id round-trips")
}

func TestHealthStats(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	var empty map[string]any
	getJSON(t, app, "/health", &empty)
	assert.Equal(t, float64(0), empty["total_votes"])
	assert.Equal(t, float64(0), empty["unique_grants"])
	assert.Nil(t, empty["top_grant"])
	assert.Nil(t, empty["last_vote_timestamp"])

	grantID := "grant-" + uuid.NewString()
	resp := castVote(t, app, grantID, "Gil", "like")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var health map[string]any
	getJSON(t, app, "/health", &health)
	assert.Equal(t, float64(1), health["total_votes"])
	assert.Equal(t, float64(1), health["unique_grants"])
	assert.Equal(t, float64(1), health["unique_researchers"])
	assert.Equal(t, grantID, health["top_grant"])
	assert.NotNil(t, health["last_vote_timestamp"])
}
