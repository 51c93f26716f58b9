package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformRequest(t *testing.T) {
	var gotMethod, gotPath, gotQuery string
	var gotBody map[string][]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotQuery = r.Method, r.URL.Path, r.URL.RawQuery
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &gotBody)
		}
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	host = srv.URL
	dryRun = true
	defer func() { dryRun = false }()

	require.NoError(t, performRequest(http.MethodPost, "/draws", map[string][]int{"player_ids": {1, 2, 3}}))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/draws", gotPath)
	assert.Equal(t, "dry_run=true", gotQuery)
	assert.Equal(t, []int{1, 2, 3}, gotBody["player_ids"])
}

func TestScoreCommandRejectsNonNumbers(t *testing.T) {
	err := scoreCmd.RunE(scoreCmd, []string{"1", "three", "0"})
	assert.ErrorContains(t, err, "three")
}
