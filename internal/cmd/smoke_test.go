package cmd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeCommand_PlanFile(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	planPath := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte(`
name: actions
base_url: http://unused.invalid
steps:
  - name: parse_query
    method: POST
    path: /parse-query
    body: {query: Summarize the logs and create a report}
  - name: compress_memory
    method: POST
    path: /compress-memory
    body: {memory: Very long memory string for summarization.}
`), 0644))

	console, err := execute(t, "smoke", planPath,
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"--base-url", srv.URL, "--timeout", "2s")
	require.NoError(t, err)

	assert.Equal(t, int32(2), hits.Load())
	assert.Contains(t, console, "PLAN: actions ("+srv.URL+")")
	assert.Contains(t, console, "DONE: 2 sent, 0 failed, 0 skipped")
}

func TestSmokeCommand_Errors(t *testing.T) {
	noConfig := filepath.Join(t.TempDir(), "none.yaml")

	tests := []struct {
		name string
		args []string
	}{
		{"存在しないプラン", []string{filepath.Join(t.TempDir(), "missing.yaml")}},
		{"不正なURL", []string{"--base-url", "not a url"}},
		{"ゼロのタイムアウト", []string{"--timeout", "0s"}},
		{"引数が多すぎる", []string{"a.yaml", "b.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"smoke", "--config", noConfig}, tt.args...)
			_, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}
