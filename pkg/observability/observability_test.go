package observability_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/interchange"
	"github.com/aretw0/interchange/internal/logging"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/observability"
	"github.com/aretw0/interchange/pkg/tree"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	b := tree.NewBuilder("component")
	b.Root().Branch(tree.Literal("list"), tree.Execute(func(context.Context, *domain.Access) (domain.Result, error) {
		return domain.ResultSuccess, nil
	}))
	cmd, err := interchange.New("component", b.MustBuild(), interchange.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cmd.Close(context.Background()) })

	_, err = cmd.Dispatch(t.Context(), []string{"list"}, domain.Console())
	require.NoError(t, err)
	_, err = cmd.Dispatch(t.Context(), []string{"nope"}, domain.Console())
	require.NoError(t, err)
	cmd.Complete(t.Context(), []string{"li"}, domain.Console())

	expected := `
# HELP interchange_results_total Total number of concluded executions by result
# TYPE interchange_results_total counter
interchange_results_total{command="component",result="SUCCESS"} 1
interchange_results_total{command="component",result="WRONG_USAGE"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "interchange_results_total"))

	expected = `
# HELP interchange_dispatches_total Total number of branch actions invoked
# TYPE interchange_dispatches_total counter
interchange_dispatches_total{address="/list",command="component"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "interchange_dispatches_total"))

	expected = `
# HELP interchange_completions_total Total number of completion requests
# TYPE interchange_completions_total counter
interchange_completions_total{command="component"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "interchange_completions_total"))

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "interchange_execution_duration_seconds"))
}

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	second, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	ctx := context.Background()
	first.Hooks().OnTrace(ctx, &domain.TraceEvent{Command: "c", Conclusion: domain.ConclusionMatch})
	second.Hooks().OnTrace(ctx, &domain.TraceEvent{Command: "c", Conclusion: domain.ConclusionMatch})

	expected := `
# HELP interchange_traces_total Total number of traced dispatches by conclusion
# TYPE interchange_traces_total counter
interchange_traces_total{command="c",conclusion="MATCH"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "interchange_traces_total"))
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := observability.LogHooks(logging.NewWithWriter(&buf, logging.ParseLevel("warn")))
	ctx := context.Background()

	hooks.OnResult(ctx, &domain.ResultEvent{Command: "component", Result: domain.ResultSuccess})
	assert.Empty(t, buf.String(), "successes are debug-level")

	hooks.OnResult(ctx, &domain.ResultEvent{Command: "component", Result: domain.ResultFail, Duration: time.Millisecond, Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "FAIL")
	assert.Contains(t, buf.String(), "boom")
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	var healthy atomic.Bool
	healthy.Store(true)
	checks := map[string]observability.HealthCheck{
		"cooldowns": func(context.Context) error {
			if healthy.Load() {
				return nil
			}
			return errors.New("connection refused")
		},
	}
	srv := httptest.NewServer(observability.Handler(reg, checks))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	healthy.Store(false)
	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	var body bytes.Buffer
	_, _ = body.ReadFrom(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body.String(), "cooldowns: connection refused")

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServe_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- observability.Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), logging.NewNop())
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
