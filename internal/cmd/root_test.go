package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/impactboard/admin-cli/pkg/errors"
	"github.com/impactboard/admin-cli/pkg/output"
	"github.com/impactboard/admin-cli/pkg/service"
)

// run executes the CLI against handler and returns what it printed.
func run(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("IMPACTBOARD_API_BASE_URL", srv.URL)

	color.NoColor = true
	var buf bytes.Buffer
	t.Cleanup(output.SetWriter(&buf))

	cfg := filepath.Join(t.TempDir(), "config.toml")
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := execute(context.Background())
	return buf.String(), err
}

func pending(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/admin/approvals/pending":
			_, _ = w.Write([]byte(body))
		case r.Method == http.MethodPost && r.URL.Path == "/api/admin/approvals/post/p1/approve":
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"success":false,"message":"Post is locked"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

const onePost = `{"success":true,"data":[{"_id":"p1","contentType":"post","title":"Community garden update","author":{"name":"Asha Verma"}}]}`

func TestApprovalsListJSON(t *testing.T) {
	out, err := run(t, pending(onePost), "approvals", "list", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"contentId": "p1"`)
	assert.Contains(t, out, `"total": 1`)
	assert.NotContains(t, out, `"demo"`)
}

func TestApprovalsListFallsBackToDemo(t *testing.T) {
	failing := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	out, err := run(t, failing, "approvals", "list", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"demo": true`)
	assert.Contains(t, out, "p_101")
}

func TestApproveRollbackExitsWithReportedError(t *testing.T) {
	out, err := run(t, pending(onePost), "approvals", "approve", "p1", "--output", "text")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "… Approving…")
	assert.Contains(t, out, "✗ Post is locked")
}

func TestMetricsDumpedWhenCommandFails(t *testing.T) {
	var dump bytes.Buffer
	metricsOut = &dump
	t.Cleanup(func() {
		metricsOut = os.Stderr
		showMetrics = false
	})

	_, err := run(t, pending(onePost), "approvals", "approve", "p1", "--output", "text", "--metrics")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, dump.String(), `optimistic_mutations_total{action="approve",outcome="rolled_back"}`)
}

func TestApproveUnknownID(t *testing.T) {
	_, err := run(t, pending(onePost), "approvals", "approve", "nope", "--output", "text")
	var cliErr *clierrors.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, clierrors.ErrorTypeNotFound, cliErr.Type)
}

func TestCompletePendingIDs(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	_, err := run(t, pending(onePost), "__complete", "approvals", "approve", "")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "p1\tpost: Community garden update")
}

func TestCompletePendingIDsSkipsDemoData(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	failing := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	printed, err := run(t, failing, "__complete", "approvals", "reject", "")
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "p_101")
	assert.Empty(t, printed)
}

func TestCompletionScript(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	_, err := run(t, pending(onePost), "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "impactboard-admin")
}

func TestOutcomeError(t *testing.T) {
	assert.NoError(t, outcomeError(service.OutcomeCommitted, "Pending item", "p1"))
	assert.ErrorIs(t, outcomeError(service.OutcomeRolledBack, "Pending item", "p1"), errReported)
	assert.Error(t, outcomeError(service.OutcomeNoop, "Pending item", "p1"))
}

func TestReportFirst(t *testing.T) {
	notFound := clierrors.NotFoundError("Pending item", "x")
	assert.Equal(t, notFound, reportFirst(nil, notFound))
	assert.Equal(t, notFound, reportFirst(errReported, notFound))
	assert.Equal(t, notFound, reportFirst(notFound, errReported))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"approvals", "list"},
		{"approvals", "review"},
		{"posts", "delete"},
		{"resources", "create"},
		{"stories", "list"},
		{"qna", "answer"},
		{"users", "role"},
		{"connections", "accept"},
		{"notifications", "watch"},
		{"messages", "delete"},
		{"auth", "whoami"},
		{"settings", "show"},
		{"dashboard"},
		{"completion"},
	} {
		c, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}
}
