package matches

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"matchup-model/core/loader"
	"matchup-model/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	db := setupDB(t)
	feature := NewFeature(db, zap.NewNop())
	_, err := feature.Service().Import(context.Background(), sampleRecords())
	require.NoError(t, err)

	app := fiber.New()
	m := loader.NewManager()
	m.Register(feature)
	loaded, err := m.LoadAll(app)
	require.NoError(t, err)
	require.Equal(t, []string{"matches"}, loaded)
	return app
}

func get(t *testing.T, app *fiber.App, url string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHandleList(t *testing.T) {
	app := setupApp(t)

	status, body := get(t, app, "/matches?team=XYZ")
	require.Equal(t, fiber.StatusOK, status)

	var page Page
	require.NoError(t, json.Unmarshal(body, &page))
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, page.Records, 2)
	assert.Equal(t, 1, page.Records[0].Round)
	assert.Equal(t, "XYZ", page.Records[1].Team1.Code)
	assert.True(t, page.Records[1].Team2.Missing)

	status, body = get(t, app, "/matches?limit=1&offset=1")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &page))
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Records, 1)
}

func TestHandleList_BadQuery(t *testing.T) {
	app := setupApp(t)

	for _, url := range []string{"/matches?limit=-1", "/matches?limit=5000", "/matches?offset=-2", "/matches?round=-1"} {
		status, body := get(t, app, url)
		assert.Equal(t, fiber.StatusBadRequest, status, url)
		assert.Contains(t, string(body), "error")
	}
}

func TestHandleSummary(t *testing.T) {
	app := setupApp(t)

	status, body := get(t, app, "/matches/summary")
	require.Equal(t, fiber.StatusOK, status)

	var s reconcile.Summary
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, 3, s.TotalRecords)
	assert.Equal(t, 1, s.RegularRounds)
	assert.Equal(t, 1, s.ByeRounds)
	assert.Equal(t, 1, s.UnresolvedRounds)
	assert.Equal(t, 2, s.RoundsByNumber[2])
}

func TestHandleSchema(t *testing.T) {
	app := setupApp(t)

	status, body := get(t, app, "/matches/schema")
	require.Equal(t, fiber.StatusOK, status)

	var report SchemaReport
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, TableName, report.Table)
	assert.Equal(t, SchemaOK, report.Status)
}

func TestFeature(t *testing.T) {
	f := NewFeature(nil, zap.NewNop())
	assert.Equal(t, "matches", f.Name())
	assert.False(t, f.IsEnabled())
	assert.True(t, NewFeature(setupDB(t), zap.NewNop()).IsEnabled())
}
