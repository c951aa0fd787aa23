package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/quill-api/internal/api"
	"github.com/phrazzld/quill-api/internal/container"
	"github.com/phrazzld/quill-api/internal/graph"
	"github.com/phrazzld/quill-api/internal/platform/memory"
)

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func newHandler(t *testing.T) *api.GraphQLHandler {
	t.Helper()
	schema, err := graph.NewSchema(container.Wire(memory.NewUserStore(nil), memory.NewPostStore(nil), nil))
	require.NoError(t, err)
	return api.NewGraphQLHandler(schema, true)
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, graphQLResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp graphQLResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestGraphQLHandler_Post(t *testing.T) {
	h := newHandler(t)

	rec, resp := post(t, h, `{"query":"mutation($n: String!) { createUser(nickname: $n) { nickname } }","variables":{"n":"elliot"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"nickname":"elliot"}`, string(resp.Data["createUser"]))

	rec, resp = post(t, h, `{"query":"mutation { createUser(nickname: \"elliot\") { id } }"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "NICKNAME_EXISTS", resp.Errors[0].Extensions["code"])
	assert.Equal(t, "CONFLICT", resp.Errors[0].Extensions["category"])
	assert.Equal(t, "elliot", resp.Errors[0].Extensions["nickname"])
}

func TestGraphQLHandler_BadRequests(t *testing.T) {
	h := newHandler(t)

	rec, _ := post(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = post(t, h, `{"query":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPut, "/graphql", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGraphQLHandler_Get(t *testing.T) {
	h := newHandler(t)

	t.Run("runs queries", func(t *testing.T) {
		q := url.Values{}
		q.Set("query", `query($n: String!) { searchUser(nickname: $n) { id } }`)
		q.Set("variables", `{"n":"nobody"}`)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp graphQLResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Errors)
		assert.Equal(t, "null", string(resp.Data["searchUser"]))
	})

	t.Run("refuses mutations", func(t *testing.T) {
		q := url.Values{}
		q.Set("query", `mutation { createPost(content: "x") { id } }`)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("rejects malformed variables", func(t *testing.T) {
		q := url.Values{}
		q.Set("query", `{ searchUser(nickname: "x") { id } }`)
		q.Set("variables", `{`)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("serves the playground without a query", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "GraphQLPlayground")
	})

	t.Run("no playground when disabled", func(t *testing.T) {
		schema, err := graph.NewSchema(container.Wire(memory.NewUserStore(nil), memory.NewPostStore(nil), nil))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		api.NewGraphQLHandler(schema, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	api.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
