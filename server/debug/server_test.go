//
// Copyright (C) 2025 manualqa-go Authors. All rights reserved.
//
// manualqa-go is licensed under the Apache License Version 2.0.
//
//

package debug_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manualqa/manualqa-go/assist"
	"github.com/manualqa/manualqa-go/server/debug"
)

type fixedRetriever struct{}

func (fixedRetriever) Retrieve(ctx context.Context, query string, limit int) ([]string, error) {
	return []string{
		"Step 1: remove cover. Step 2: install filter.",
		"Specifications: voltage 12V, weight 2kg.",
	}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	engine := assist.New(assist.WithRetriever(fixedRetriever{}))
	ts := httptest.NewServer(debug.New(engine, debug.WithCORS()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestListStrategies(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/strategies")
	require.NoError(t, err)
	body := decodeBody(t, resp)
	names, ok := body["strategies"].([]any)
	require.True(t, ok)
	assert.Len(t, names, 4)
}

func TestEnhance(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/enhance", map[string]any{
		"query": "install the filter",
		"passages": []string{
			"Install the filter under the sink.",
			"Warranty terms apply.",
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "hybrid", body["strategy"])
	assert.Equal(t, float64(2), body["chunks_analyzed"])
	assert.NotEmpty(t, body["enhanced_context"])
}

func TestEnhanceRequiresQuery(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/enhance", map[string]any{"passages": []string{"x"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAsk(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/ask", map[string]any{"question": "How do I install the filter?"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "How do I install the filter?", body["question"])
	assert.NotEmpty(t, body["context"])
}

func TestAskRequiresQuestion(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/ask", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCompare(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/compare", map[string]any{"question": "install the filter"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	reports, ok := body["reports"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, reports, 4)
}

func TestSetStrategy(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/strategy/rerank", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req, err = http.NewRequest(http.MethodPut, ts.URL+"/strategy/bogus", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSetPromptStyle(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/prompt-style/step_by_step", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req, err = http.NewRequest(http.MethodPut, ts.URL+"/prompt-style/bogus", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/ask", map[string]any{"question": "install the filter"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp2, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body := decodeBody(t, resp2)
	assert.Equal(t, float64(1), body["total_queries"])
	assert.Equal(t, "hybrid", body["current_strategy"])
}
