package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

type recorded struct {
	method      string
	path        string
	rawQuery    string
	contentType string
	body        string
}

// recordingServer answers every request with status/body and records it.
func recordingServer(t *testing.T, status int, body string) (*Client, func() []recorded) {
	t.Helper()
	var (
		mu  sync.Mutex
		got []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = append(got, recorded{
			method:      r.Method,
			path:        r.URL.Path,
			rawQuery:    r.URL.RawQuery,
			contentType: r.Header.Get("Content-Type"),
			body:        string(b),
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, logger.New(logger.LevelOff, nil), WithDoer(srv.Client()))
	return c, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), got...)
	}
}

// stubDoer returns a canned response without touching the network.
type stubDoer struct {
	status string
	code   int
	body   string
	err    error
	reqs   []*http.Request
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{
		StatusCode: s.code,
		Status:     s.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Request:    req,
	}, nil
}

func TestListDecodesSummaries(t *testing.T) {
	c, got := recordingServer(t, http.StatusOK,
		`[{"id":1,"name":"Salad","procedure":"toss","ingredients":[{"id":10,"name":"lettuce"},{"id":11,"name":"dressing"}]}]`)

	recipes, err := c.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Salad", recipes[0].Name)
	assert.Equal(t, []domain.Ingredient{{ID: 10, Name: "lettuce"}, {ID: 11, Name: "dressing"}}, recipes[0].Ingredients)

	require.Len(t, got(), 1)
	assert.Equal(t, http.MethodGet, got()[0].method)
	assert.Equal(t, "/recipes/", got()[0].path)
	assert.Equal(t, "application/json", got()[0].contentType)
}

func TestListFilterSendsQuery(t *testing.T) {
	c, got := recordingServer(t, http.StatusOK, `[]`)
	filter := "Tac"

	recipes, err := c.List(context.Background(), &filter)
	require.NoError(t, err)
	assert.Empty(t, recipes)

	require.Len(t, got(), 1)
	assert.Equal(t, "/recipes/", got()[0].path)
	assert.Equal(t, "q=Tac", got()[0].rawQuery)
	assert.Equal(t, "application/json", got()[0].contentType)
}

func TestCollectionURL(t *testing.T) {
	c := NewClient("", logger.New(logger.LevelOff, nil))
	empty := ""
	spaced := "mac and cheese"

	assert.Equal(t, "http://localhost:8000/recipes/", c.CollectionURL(nil))
	assert.Equal(t, "http://localhost:8000/recipes/?q=", c.CollectionURL(&empty))
	assert.Equal(t, "http://localhost:8000/recipes/?q=mac+and+cheese", c.CollectionURL(&spaced))
	assert.Equal(t, "http://localhost:8000/recipes/1/", c.RecordURL("1"))
}

func TestBaseURLTrimsSlash(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("", logger.New(logger.LevelOff, nil)).BaseURL())
	assert.Equal(t, "http://recipes.test", NewClient("http://recipes.test/", logger.New(logger.LevelOff, nil)).BaseURL())
}

func TestHTTPErrorKeepsReasonPhrase(t *testing.T) {
	stub := &stubDoer{code: 500, status: "500 Error", body: `[]`}
	c := NewClient("http://example.test", logger.New(logger.LevelOff, nil), WithDoer(stub))

	_, err := c.List(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, "500 Error", err.Error())
	assert.True(t, IsHTTPError(err))
}

func TestHTTPErrorFallsBackToStatusText(t *testing.T) {
	stub := &stubDoer{code: 404, status: "404", body: ``}
	c := NewClient("http://example.test", logger.New(logger.LevelOff, nil), WithDoer(stub))

	err := c.Delete(context.Background(), "3")
	require.Error(t, err)
	assert.Equal(t, "404 Not Found", err.Error())
}

func TestTransportFailureIsWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	stub := &stubDoer{err: boom}
	c := NewClient("http://example.test", logger.New(logger.LevelOff, nil), WithDoer(stub))

	_, err := c.List(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsHTTPError(err))
}

func TestListRejectsNonJSON(t *testing.T) {
	c, _ := recordingServer(t, http.StatusOK, `<html>oops</html>`)

	_, err := c.List(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode recipe list")
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		c, got := recordingServer(t, http.StatusOK,
			`{"id":1,"name":"Salad","procedure":"toss","ingredients":[{"id":10,"name":"lettuce"}]}`)

		r, err := c.Get(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, "Salad", r.Name)
		assert.Equal(t, "/recipes/1/", got()[0].path)
	})

	t.Run("empty body is not found", func(t *testing.T) {
		c, _ := recordingServer(t, http.StatusOK, ``)

		_, err := c.Get(context.Background(), "1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("null is not found", func(t *testing.T) {
		c, _ := recordingServer(t, http.StatusOK, `null`)

		_, err := c.Get(context.Background(), "1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid id never hits the network", func(t *testing.T) {
		stub := &stubDoer{code: 200, status: "200 OK"}
		c := NewClient("http://example.test", logger.New(logger.LevelOff, nil), WithDoer(stub))

		_, err := c.Get(context.Background(), "-1")
		assert.ErrorIs(t, err, domain.ErrInvalidID)
		assert.Empty(t, stub.reqs)
	})
}

func TestCreatePostsPayloadWithoutID(t *testing.T) {
	c, got := recordingServer(t, http.StatusCreated, `{}`)

	err := c.Create(context.Background(), domain.RecipeEdit{
		ID:          "9",
		Name:        "name",
		Procedure:   "procedure",
		Ingredients: []string{"ing1", "ing2", "ing3"},
	})
	require.NoError(t, err)

	require.Len(t, got(), 1)
	assert.Equal(t, http.MethodPost, got()[0].method)
	assert.Equal(t, "/recipes/", got()[0].path)
	assert.Equal(t, "application/json", got()[0].contentType)
	assert.JSONEq(t,
		`{"name":"name","procedure":"procedure","ingredients":[{"name":"ing1"},{"name":"ing2"},{"name":"ing3"}]}`,
		got()[0].body)
}

func TestUpdatePutsPayloadWithRoutedID(t *testing.T) {
	c, got := recordingServer(t, http.StatusOK, ``)

	err := c.Update(context.Background(), domain.RecipeEdit{
		ID:          "1",
		Name:        "Salad",
		Procedure:   "toss",
		Ingredients: []string{"a"},
	})
	require.NoError(t, err)

	require.Len(t, got(), 1)
	assert.Equal(t, http.MethodPut, got()[0].method)
	assert.Equal(t, "/recipes/1/", got()[0].path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(got()[0].body), &body))
	assert.Equal(t, "1", body["id"])
}

func TestUpdateRequiresID(t *testing.T) {
	c := NewClient("http://example.test", logger.New(logger.LevelOff, nil), WithDoer(&stubDoer{}))

	err := c.Update(context.Background(), domain.RecipeEdit{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestDelete(t *testing.T) {
	c, got := recordingServer(t, http.StatusNoContent, ``)

	require.NoError(t, c.Delete(context.Background(), "1"))
	require.Len(t, got(), 1)
	assert.Equal(t, http.MethodDelete, got()[0].method)
	assert.Equal(t, "/recipes/1/", got()[0].path)
	assert.Equal(t, "application/json", got()[0].contentType)
}
