package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/cityevents/services/nearby-service/internal/transport/http/dto"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := rootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder("GET", `=~^https://tm\.test/discovery/v2/events\.json`,
		httpmock.NewStringResponder(http.StatusOK, `{"_embedded":{"events":[{"id":"A","name":"Astros"},{"name":"no id"}]}}`))

	out, err := run(t, "search", "--lat", "29.682684", "--lon", "-95.295410", "--api-key", "k", "--base-url", "https://tm.test")
	require.NoError(t, err)

	var items []dto.ItemResp
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].ItemID)
	assert.Equal(t, "Astros", items[0].Name)
}

func TestCommands_Guards(t *testing.T) {
	t.Run("search_requires_coordinates", func(t *testing.T) {
		_, err := run(t, "search", "--api-key", "k")
		assert.Error(t, err)
	})

	t.Run("search_requires_api_key", func(t *testing.T) {
		_, err := run(t, "search", "--lat", "1", "--lon", "1", "--api-key", "")
		assert.Error(t, err)
	})

	t.Run("schema_requires_dsn", func(t *testing.T) {
		_, err := run(t, "schema", "reset", "--database-url", "")
		assert.ErrorContains(t, err, "missing --database-url")
	})

	t.Run("seed_requires_user", func(t *testing.T) {
		_, err := run(t, "seed", "--user-id", "", "--database-url", "")
		assert.ErrorContains(t, err, "--user-id and --password are required")
	})
}
