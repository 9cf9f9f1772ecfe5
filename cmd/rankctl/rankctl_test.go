// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func suggestionsJSON(t *testing.T) string {
	t.Helper()
	now := time.Now().UTC()
	items := []map[string]interface{}{
		{"id": 1, "title": "Dashboard widgets", "category": "UX", "net_votes": 40, "comment_count": 4, "created_at": now.Add(-48 * time.Hour)},
		{"id": 2, "title": "Export analytics chart", "category": "Reporting", "net_votes": 2, "created_at": now.Add(-24 * time.Hour)},
		{"id": 3, "title": "Dark mode", "category": "UI", "status": "IMPLEMENTED", "net_votes": 90, "created_at": now.Add(-24 * time.Hour)},
		{"id": 4, "title": "Slack integration", "category": "Integrations", "net_votes": 1, "created_at": now.Add(-90 * 24 * time.Hour)},
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)
	return writeFile(t, "suggestions.json", string(data))
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPersonalized(t *testing.T) {
	t.Parallel()

	path := suggestionsJSON(t)
	out, err := execute(t, "", "personalized", "--user-id", "7", "--role", "PREMIUM", "--suggestions", path)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 4)
	for _, item := range got {
		assert.Equal(t, item["ai_score"], item["personalized_score"])
		assert.NotContains(t, item, "breakdown")
	}
}

func TestPersonalized_ExplainAndBehavior(t *testing.T) {
	t.Parallel()

	path := suggestionsJSON(t)
	behavior := writeFile(t, "behavior.json", `{
		"votes": [{"suggestion": {"id": 9, "title": "Widgets", "category": "UX"}, "vote_type": "UPVOTE"}],
		"views": [{"suggestion_id": 1}]
	}`)

	out, err := execute(t, "", "personalized", "--user-id", "7", "-s", path, "-b", behavior, "--explain")
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got)
	for _, item := range got {
		require.Contains(t, item, "breakdown")
		score, ok := item["personalized_score"].(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestPersonalized_Stdin(t *testing.T) {
	t.Parallel()

	in := `{"suggestions": [{"id": 1, "title": "Only one"}]}`
	out, err := execute(t, in, "personalized", "--user-id", "1", "--suggestions", "-")
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "PENDING", got[0]["status"])
}

func TestPersonalized_UnknownRoleSeedsDefault(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "general.json", `[{"id": 1, "title": "Bulk edit", "category": "General", "status": "APPROVED"}]`)
	out, err := execute(t, "", "personalized", "--user-id", "3", "--role", "owner", "-s", path, "--explain")
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	breakdown, ok := got[0]["breakdown"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 0.4, breakdown["category"], 1e-9)
}

func TestPersonalized_InvalidInput(t *testing.T) {
	t.Parallel()

	path := suggestionsJSON(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing user id", []string{"personalized", "-s", path}},
		{"zero user id", []string{"personalized", "--user-id", "0", "-s", path}},
		{"role too long", []string{"personalized", "--user-id", "1", "--role", strings.Repeat("R", 65), "-s", path}},
		{"missing file", []string{"personalized", "--user-id", "1", "-s", filepath.Join(t.TempDir(), "nope.json")}},
		{"bad status", []string{"personalized", "--user-id", "1", "-s", writeFile(t, "bad.json", `[{"id": 1, "status": "LOST"}]`)}},
		{"bad json", []string{"personalized", "--user-id", "1", "-s", writeFile(t, "broken.json", `[{"id":`)}},
		{"empty file", []string{"personalized", "--user-id", "1", "-s", writeFile(t, "empty.json", "  \n")}},
		{"bad vote type", []string{"personalized", "--user-id", "1", "-s", path, "-b", writeFile(t, "b.json", `{"votes": [{"vote_type": "SIDEWAYS"}]}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := execute(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestTrending(t *testing.T) {
	t.Parallel()

	path := suggestionsJSON(t)
	out, err := execute(t, "", "trending", "--suggestions", path, "--limit", "2")
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	// 44 activity over 2 days beats 2 over 1 day; the implemented one is excluded.
	assert.EqualValues(t, 1, got[0]["id"])
	assert.EqualValues(t, 2, got[1]["id"])
}

func TestContext_YAMLOutput(t *testing.T) {
	t.Parallel()

	path := suggestionsJSON(t)
	out, err := execute(t, "", "context", "-s", path, "--name", "dashboard", "--output", "yaml")
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	// Both score 2; ties keep input order.
	assert.Equal(t, 1, got[0]["id"])
	assert.Equal(t, 2, got[0]["contextual_score"])
	assert.Equal(t, "dashboard", got[0]["context"])
	assert.ElementsMatch(t, []interface{}{"dashboard", "widget"}, got[0]["matched_keywords"])
	assert.Equal(t, 2, got[1]["id"])
}

func TestContext_UnknownNameFallsBack(t *testing.T) {
	t.Parallel()

	path := suggestionsJSON(t)
	out, err := execute(t, "", "context", "-s", path, "--name", "nowhere")
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got)
	assert.Equal(t, "dashboard", got[0]["context"])
}

func TestConfigFlag(t *testing.T) {
	t.Parallel()

	path := suggestionsJSON(t)
	cfg := writeFile(t, "config.yaml", "ranking:\n  trending_limit: 1\n")

	out, err := execute(t, "", "trending", "-s", path, "--config", cfg)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 1)
}

func TestUnsupportedOutput(t *testing.T) {
	t.Parallel()

	path := suggestionsJSON(t)
	_, err := execute(t, "", "trending", "-s", path, "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output")
}
