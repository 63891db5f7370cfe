package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hammamikhairi/recipedesk/internal/api"
	"github.com/hammamikhairi/recipedesk/internal/apitest"
	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
	"github.com/hammamikhairi/recipedesk/internal/wire"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func salad() *domain.RecipeSummary {
	return &domain.RecipeSummary{
		ID:        1,
		Name:      "Salad",
		Procedure: "toss",
		Ingredients: []domain.Ingredient{
			{ID: 10, Name: "lettuce"},
			{ID: 11, Name: "dressing"},
		},
	}
}

func newEditor(t *testing.T, fake *apitest.Fake, seed Seed) (*Editor, func() bool) {
	t.Helper()
	e, cmd := New(context.Background(), fake, logger.New(logger.LevelOff, nil), seed)
	// The returned func completes the initial fetch, if there is one.
	return e, func() bool {
		require.NotNil(t, cmd, "expected an initial fetch")
		return e.Apply(cmd())
	}
}

func TestModeInlineRecipe(t *testing.T) {
	fake := &apitest.Fake{}
	e, _ := newEditor(t, fake, Seed{Recipe: salad(), RecordID: "1"})

	s := e.State()
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, domain.RecordID("1"), s.RecordID)
	assert.Equal(t, "lettuce,dressing", wire.JoinIngredients(s.Draft.Ingredients))
	assert.Empty(t, fake.Calls(), "inline seed makes no request")
	assert.Equal(t, "Currently editing recipe no 1", e.Title())
}

func TestModeInlineRecipeWithoutRouteID(t *testing.T) {
	e, _ := newEditor(t, &apitest.Fake{}, Seed{Recipe: salad()})

	assert.Equal(t, domain.RecordID("1"), e.State().RecordID)
	assert.False(t, e.Creating())
}

func TestModeFetchByID(t *testing.T) {
	fake := &apitest.Fake{GetResult: salad()}
	e, complete := newEditor(t, fake, Seed{RecordID: "1"})

	assert.Equal(t, PhaseLoading, e.State().Phase)
	assert.False(t, complete())

	s := e.State()
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "Salad", s.Draft.Name)
	assert.Equal(t, []string{"lettuce", "dressing"}, s.Draft.Ingredients)
	assert.Empty(t, s.Detail)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.RecordID("1"), calls[0].ID)
}

func TestModeCreate(t *testing.T) {
	for _, id := range []domain.RecordID{"", "-1", "abc"} {
		t.Run(string(id), func(t *testing.T) {
			fake := &apitest.Fake{}
			e, cmd := New(context.Background(), fake, logger.New(logger.LevelOff, nil), Seed{RecordID: id})

			assert.Nil(t, cmd)
			assert.True(t, e.Creating())
			assert.Equal(t, PhaseReady, e.State().Phase)
			assert.Equal(t, "Create new recipe", e.Title())
			assert.Empty(t, fake.Calls())
		})
	}
}

func TestFetchRecordGuardsID(t *testing.T) {
	e, _ := newEditor(t, &apitest.Fake{}, Seed{})

	assert.Nil(t, e.FetchRecord("-1"))
	assert.Nil(t, e.FetchRecord("x"))
}

func TestFetchEmptyNavigatesAway(t *testing.T) {
	fake := &apitest.Fake{} // nil GetResult answers not found
	e, complete := newEditor(t, fake, Seed{RecordID: "7"})

	assert.True(t, complete())
	assert.True(t, e.State().NavigateAway)
	assert.Equal(t, PhaseDone, e.State().Phase)
}

func TestFetchFailureKeepsDraft(t *testing.T) {
	fake := &apitest.Fake{GetErr: &api.HTTPError{StatusCode: 500, StatusText: "Error"}}
	e, complete := newEditor(t, fake, Seed{RecordID: "1"})
	e.SetName("typed meanwhile")

	assert.False(t, complete())
	s := e.State()
	assert.Equal(t, "500 Error", s.Detail)
	assert.False(t, s.NavigateAway)
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, "typed meanwhile", s.Draft.Name)
}

func TestEditField(t *testing.T) {
	e, _ := newEditor(t, &apitest.Fake{}, Seed{})

	require.NoError(t, e.EditField(FieldName, "Soup"))
	require.NoError(t, e.EditField(FieldProcedure, "boil"))
	require.NoError(t, e.EditField(FieldIngredients, []string{"water", "salt"}))

	s := e.State()
	assert.Equal(t, "Soup", s.Draft.Name)
	assert.Equal(t, "boil", s.Draft.Procedure)
	assert.Equal(t, []string{"water", "salt"}, s.Draft.Ingredients)

	assert.ErrorIs(t, e.EditField(FieldName, 3), ErrFieldType)
	assert.ErrorIs(t, e.EditField(FieldIngredients, "water,salt"), ErrFieldType)
	assert.Error(t, e.EditField(Field(42), "x"))
}

func TestSubmitRequiresNameAndProcedure(t *testing.T) {
	fake := &apitest.Fake{}
	e, _ := newEditor(t, fake, Seed{})

	assert.Nil(t, e.Submit())
	assert.ErrorIs(t, e.Validate(), ErrRequired)

	e.SetName("name")
	assert.Nil(t, e.Submit())
	assert.Empty(t, fake.Calls())
	assert.Equal(t, PhaseReady, e.State().Phase)
}

func TestSubmitCreate(t *testing.T) {
	fake := &apitest.Fake{}
	e, _ := newEditor(t, fake, Seed{})
	e.SetName("name")
	e.SetProcedure("procedure")
	e.SetIngredientsText("ing1,ing2,ing3")

	cmd := e.Submit()
	require.NotNil(t, cmd)
	assert.Equal(t, PhaseSubmitting, e.State().Phase)
	assert.True(t, e.Apply(cmd()))

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "POST", calls[0].Method)
	assert.Equal(t, domain.RecipeEdit{
		Name:        "name",
		Procedure:   "procedure",
		Ingredients: []string{"ing1", "ing2", "ing3"},
	}, calls[0].Edit)

	s := e.State()
	assert.True(t, s.NavigateAway)
	assert.Equal(t, PhaseDone, s.Phase)
	assert.Nil(t, e.Submit(), "finished editor does not submit again")
}

func TestSubmitUpdateKeepsRoutedID(t *testing.T) {
	fake := &apitest.Fake{}
	e, _ := newEditor(t, fake, Seed{Recipe: salad(), RecordID: "1"})
	e.SetIngredientsText("a,b,c")

	assert.True(t, e.Apply(e.Submit()()))

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "PUT", calls[0].Method)
	assert.Equal(t, domain.RecordID("1"), calls[0].Edit.ID)
	assert.Equal(t, []string{"a", "b", "c"}, calls[0].Edit.Ingredients)
}

func TestSubmitFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"http", &api.HTTPError{StatusCode: 400, StatusText: "Bad Request"}, "400 Bad Request"},
		{"transport", errors.New("api: request failed: timeout"), "api: request failed: timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &apitest.Fake{UpdateErr: tt.err}
			e, _ := newEditor(t, fake, Seed{Recipe: salad(), RecordID: "1"})

			assert.False(t, e.Apply(e.Submit()()))
			s := e.State()
			assert.False(t, s.NavigateAway)
			assert.Equal(t, tt.want, s.Detail)
			assert.Equal(t, PhaseFailed, s.Phase)
			assert.True(t, s.Phase.Interactive())

			// A later success clears the detail.
			fake.UpdateErr = nil
			assert.True(t, e.Apply(e.Submit()()))
			assert.Empty(t, e.State().Detail)
		})
	}
}

func TestDelete(t *testing.T) {
	fake := &apitest.Fake{}
	e, _ := newEditor(t, fake, Seed{Recipe: salad(), RecordID: "1"})

	cmd := e.Delete()
	require.NotNil(t, cmd)
	assert.Equal(t, PhaseDeleting, e.State().Phase)
	assert.True(t, e.Apply(cmd()))

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "DELETE", calls[0].Method)
	assert.Equal(t, domain.RecordID("1"), calls[0].ID)
}

func TestDeleteFailure(t *testing.T) {
	fake := &apitest.Fake{DeleteErr: &api.HTTPError{StatusCode: 404, StatusText: "Not Found"}}
	e, _ := newEditor(t, fake, Seed{Recipe: salad(), RecordID: "1"})

	assert.False(t, e.Apply(e.Delete()()))
	assert.Equal(t, "404 Not Found", e.State().Detail)
	assert.False(t, e.State().NavigateAway)
}

func TestDeleteUnavailableWhenCreating(t *testing.T) {
	e, _ := newEditor(t, &apitest.Fake{}, Seed{})
	assert.Nil(t, e.Delete())
}

func TestTeardownDiscardsLateCompletion(t *testing.T) {
	fake := &apitest.Fake{GetResult: salad()}
	e, cmd := New(context.Background(), fake, logger.New(logger.LevelOff, nil), Seed{RecordID: "1"})
	require.NotNil(t, cmd)

	e.Teardown()
	assert.False(t, e.Apply(cmd()))
	assert.Empty(t, e.State().Draft.Name)
	assert.Equal(t, PhaseLoading, e.State().Phase)
	assert.Nil(t, e.Submit())
	assert.Nil(t, e.Delete())
}

func TestSupersededCompletionIsDropped(t *testing.T) {
	fake := &apitest.Fake{GetErr: errors.New("first failed")}
	e, _ := newEditor(t, fake, Seed{Recipe: salad(), RecordID: "1"})

	first := e.FetchRecord("1")
	second := e.FetchRecord("1")
	firstMsg := first()
	fake.GetErr = nil
	fake.GetResult = salad()
	secondMsg := second()

	assert.False(t, e.Apply(secondMsg))
	assert.False(t, e.Apply(firstMsg))
	assert.Empty(t, e.State().Detail)
	assert.Equal(t, PhaseReady, e.State().Phase)
}

func TestMutationsWaitForLoad(t *testing.T) {
	fake := &apitest.Fake{
		GetResult: salad(),
		DeleteErr: &api.HTTPError{StatusCode: 500, StatusText: "Internal Server Error"},
	}
	e, complete := newEditor(t, fake, Seed{RecordID: "1"})
	e.SetName("typed early")
	e.SetProcedure("too")

	assert.Nil(t, e.Delete(), "no delete while loading")
	assert.Nil(t, e.Submit(), "no submit while loading")
	assert.Equal(t, PhaseLoading, e.State().Phase)

	assert.False(t, complete())
	s := e.State()
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "Salad", s.Draft.Name, "the load is applied, not fenced off")
	assert.Equal(t, []string{"lettuce", "dressing"}, s.Draft.Ingredients)

	assert.False(t, e.Apply(e.Delete()()))
	s = e.State()
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, "Salad", s.Draft.Name)
	assert.Equal(t, "500 Internal Server Error", s.Detail)
	assert.Equal(t, 1, fake.Count("DELETE"))
	assert.Zero(t, fake.Count("PUT"))
}

func TestNoSecondMutationWhileBusy(t *testing.T) {
	fake := &apitest.Fake{}
	e, _ := newEditor(t, fake, Seed{Recipe: salad(), RecordID: "1"})

	first := e.Submit()
	require.NotNil(t, first)
	assert.Nil(t, e.Submit())
	assert.Nil(t, e.Delete())
	assert.True(t, e.Apply(first()))
}

func TestNavigateReportedOnce(t *testing.T) {
	fake := &apitest.Fake{}
	e, _ := newEditor(t, fake, Seed{Recipe: salad(), RecordID: "1"})

	msg := e.Submit()()
	assert.True(t, e.Apply(msg))
	assert.False(t, e.Apply(msg))
}

func TestApplyIgnoresForeignMessages(t *testing.T) {
	e, _ := newEditor(t, &apitest.Fake{}, Seed{})
	assert.False(t, e.Apply("not a completion"))
}
