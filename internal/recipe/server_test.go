package recipe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipedesk/internal/api"
	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// newServer runs the handler and returns a client pointed at it.
func newServer(t *testing.T) (*api.Client, *httptest.Server) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	srv := httptest.NewServer(NewHandler(NewMemoryStore(log), log))
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, log, api.WithDoer(srv.Client())), srv
}

func TestServerRoundTrip(t *testing.T) {
	client, _ := newServer(t)
	ctx := context.Background()

	all, err := client.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, client.Create(ctx, domain.RecipeEdit{
		Name:        "Taco",
		Procedure:   "put in shell",
		Ingredients: []string{"tortilla", "meat", "beans"},
	}))

	q := "tac"
	found, err := client.List(ctx, &q)
	require.NoError(t, err)
	require.Len(t, found, 1)
	taco := found[0]
	assert.Equal(t, "beans", taco.Ingredients[2].Name)

	id := domain.RecordIDOf(taco.ID)
	require.NoError(t, client.Update(ctx, domain.RecipeEdit{
		ID:          id,
		Name:        "Taco",
		Procedure:   "fold",
		Ingredients: []string{"tortilla"},
	}))

	got, err := client.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "fold", got.Procedure)
	assert.Len(t, got.Ingredients, 1)

	require.NoError(t, client.Delete(ctx, id))
	_, err = client.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServerErrors(t *testing.T) {
	client, srv := newServer(t)
	ctx := context.Background()

	err := client.Delete(ctx, "99")
	require.Error(t, err)
	assert.Equal(t, "404 Not Found", err.Error())

	err = client.Update(ctx, domain.RecipeEdit{ID: "99", Name: "x", Procedure: "y"})
	assert.Equal(t, "404 Not Found", err.Error())

	err = client.Create(ctx, domain.RecipeEdit{Name: "missing procedure"})
	assert.Equal(t, "400 Bad Request", err.Error())

	resp, err := srv.Client().Post(srv.URL+"/recipes/", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = srv.Client().Get(srv.URL + "/recipes/abc/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.True(t, api.IsHTTPError(client.Delete(ctx, "98")))
}
