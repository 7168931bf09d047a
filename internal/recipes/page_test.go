package recipes

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebook/recipes/internal/cli/session"
	"github.com/recipebook/recipes/internal/models"
)

// fakeAPI records calls and serves a canned collection
type fakeAPI struct {
	recipes []models.Recipe

	listErr   error
	createErr error
	updateErr error
	deleteErr error
	logoutErr error

	calls   []string
	tokens  []string
	created []models.CreateRecipeRequest
	updated map[int64]models.UpdateRecipeRequest
	deleted []int64
}

func (f *fakeAPI) record(call, token string) {
	f.calls = append(f.calls, call)
	f.tokens = append(f.tokens, token)
}

func (f *fakeAPI) ListRecipes(ctx context.Context, token string) ([]models.Recipe, error) {
	f.record("list", token)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.recipes, nil
}

func (f *fakeAPI) CreateRecipe(ctx context.Context, token string, body models.CreateRecipeRequest) error {
	f.record("create", token)
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, body)
	f.recipes = append(f.recipes, models.Recipe{ID: int64(len(f.recipes) + 1), Name: body.Name, Instructions: body.Instructions})
	return nil
}

func (f *fakeAPI) UpdateRecipe(ctx context.Context, token string, id int64, body models.UpdateRecipeRequest) error {
	f.record("update", token)
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updated == nil {
		f.updated = map[int64]models.UpdateRecipeRequest{}
	}
	f.updated[id] = body
	return nil
}

func (f *fakeAPI) DeleteRecipe(ctx context.Context, token string, id int64) error {
	f.record("delete", token)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) Logout(ctx context.Context, token string) error {
	f.record("logout", token)
	return f.logoutErr
}

type fakeView struct {
	renders [][]models.Recipe
}

func (v *fakeView) Render(recipes []models.Recipe) {
	v.renders = append(v.renders, recipes)
}

func (v *fakeView) last() []models.Recipe {
	if len(v.renders) == 0 {
		return nil
	}
	return v.renders[len(v.renders)-1]
}

type fakeNav struct {
	targets []string
}

func (n *fakeNav) Navigate(target string) {
	n.targets = append(n.targets, target)
}

// failingStore refuses to clear, to prove navigation still happens
type failingStore struct {
	session.MemoryStore
}

func (f *failingStore) Clear() error {
	return errors.New("keychain locked")
}

var soup = models.Recipe{ID: 1, Name: "Soup", Instructions: "Boil"}

func newTestPage(api *fakeAPI, s session.Store) (*Page, *fakeView, *fakeNav) {
	view := &fakeView{}
	nav := &fakeNav{}
	return NewPage(api, s, view, nav, zerolog.Nop()), view, nav
}

func loggedIn() *session.MemoryStore {
	return session.NewMemoryStore(session.Session{Token: "tok"})
}

func TestLoad_ReplacesCacheAndRenders(t *testing.T) {
	api := &fakeAPI{recipes: []models.Recipe{soup, {ID: 2, Name: "Salad", Instructions: "Toss"}}}
	page, view, _ := newTestPage(api, loggedIn())

	require.NoError(t, page.Load(context.Background()))

	assert.Equal(t, api.recipes, page.Recipes())
	assert.Equal(t, api.recipes, view.last())
	assert.Equal(t, []string{"tok"}, api.tokens)
}

func TestLoad_NoTokenNoRequest(t *testing.T) {
	api := &fakeAPI{recipes: []models.Recipe{soup}}
	page, view, _ := newTestPage(api, session.NewMemoryStore(session.Session{}))

	err := page.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, api.calls)
	assert.Empty(t, view.renders)
}

func TestLoad_FailureKeepsPreviousState(t *testing.T) {
	api := &fakeAPI{recipes: []models.Recipe{soup}}
	page, view, _ := newTestPage(api, loggedIn())
	require.NoError(t, page.Load(context.Background()))

	api.listErr = errors.New("connection refused")
	err := page.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, []models.Recipe{soup}, page.Recipes())
	assert.Len(t, view.renders, 1)
}

func TestSearch(t *testing.T) {
	api := &fakeAPI{recipes: []models.Recipe{
		soup,
		{ID: 2, Name: "Salad", Instructions: "Toss"},
		{ID: 3, Name: "Mushroom SOUP", Instructions: "Simmer"},
	}}
	page, view, _ := newTestPage(api, loggedIn())
	require.NoError(t, page.Load(context.Background()))

	tests := []struct {
		name string
		term string
		want []int64
	}{
		{name: "lower case matches", term: "so", want: []int64{1, 3}},
		{name: "upper case term", term: "SALAD", want: []int64{2}},
		{name: "surrounding spaces are ignored", term: "  soup ", want: []int64{1, 3}},
		{name: "no match", term: "xyz", want: []int64{}},
		{name: "empty term restores all in order", term: "", want: []int64{1, 2, 3}},
		{name: "blank term restores all", term: "   ", want: []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := page.Search(tt.term)

			ids := []int64{}
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, got, view.last())
		})
	}

	// Search never touches the network
	assert.Equal(t, []string{"list"}, api.calls)
}

func TestSearch_Scenario(t *testing.T) {
	api := &fakeAPI{recipes: []models.Recipe{soup}}
	page, _, _ := newTestPage(api, loggedIn())
	require.NoError(t, page.Load(context.Background()))

	assert.Equal(t, []models.Recipe{soup}, page.Search("so"))
	assert.Equal(t, []models.Recipe{}, page.Search("xyz"))
}

func TestAdd(t *testing.T) {
	api := &fakeAPI{}
	page, view, _ := newTestPage(api, loggedIn())

	require.NoError(t, page.Add(context.Background(), "  Soup ", " Boil "))

	assert.Equal(t, []models.CreateRecipeRequest{{Name: "Soup", Instructions: "Boil"}}, api.created)
	assert.Equal(t, []string{"create", "list"}, api.calls)
	assert.Equal(t, []models.Recipe{soup}, view.last())
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name         string
		store        session.Store
		recipeName   string
		instructions string
		wantErr      error
	}{
		{name: "missing name", store: loggedIn(), recipeName: " ", instructions: "Boil", wantErr: ErrMissingFields},
		{name: "missing instructions", store: loggedIn(), recipeName: "Soup", instructions: "", wantErr: ErrMissingFields},
		{name: "no token", store: session.NewMemoryStore(session.Session{}), recipeName: "Soup", instructions: "Boil", wantErr: ErrNotAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			page, _, _ := newTestPage(api, tt.store)

			err := page.Add(context.Background(), tt.recipeName, tt.instructions)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, api.calls)
		})
	}
}

func TestAdd_ServerFailureDoesNotReload(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("failed to create recipe (status 500)")}
	page, view, _ := newTestPage(api, loggedIn())

	err := page.Add(context.Background(), "Soup", "Boil")
	require.Error(t, err)
	assert.Equal(t, []string{"create"}, api.calls)
	assert.Empty(t, view.renders)
}

func TestUpdate(t *testing.T) {
	api := &fakeAPI{recipes: []models.Recipe{soup}}
	page, _, _ := newTestPage(api, loggedIn())
	require.NoError(t, page.Load(context.Background()))

	require.NoError(t, page.Update(context.Background(), "Soup", "Boil for ten minutes"))

	assert.Equal(t, models.UpdateRecipeRequest{Instructions: "Boil for ten minutes"}, api.updated[1])
	assert.Equal(t, []string{"list", "update", "list"}, api.calls)
}

func TestUpdate_NoNetworkWithoutTokenOrMatch(t *testing.T) {
	api := &fakeAPI{recipes: []models.Recipe{soup}}
	store := loggedIn()
	page, _, _ := newTestPage(api, store)
	require.NoError(t, page.Load(context.Background()))
	api.calls = nil

	// Lookup is exact: case and partial names do not match
	assert.ErrorIs(t, page.Update(context.Background(), "soup", "x"), ErrRecipeNotFound)
	assert.ErrorIs(t, page.Update(context.Background(), "Sou", "x"), ErrRecipeNotFound)
	assert.ErrorIs(t, page.Update(context.Background(), "Soup", ""), ErrMissingFields)

	require.NoError(t, store.Clear())
	assert.ErrorIs(t, page.Update(context.Background(), "Soup", "x"), ErrNotAuthenticated)

	assert.Empty(t, api.calls)
}

func TestDelete(t *testing.T) {
	api := &fakeAPI{recipes: []models.Recipe{soup, {ID: 7, Name: "Stew", Instructions: "Slow"}}}
	page, _, _ := newTestPage(api, loggedIn())
	require.NoError(t, page.Load(context.Background()))

	require.NoError(t, page.Delete(context.Background(), " Stew "))

	assert.Equal(t, []int64{7}, api.deleted)
	assert.Equal(t, []string{"list", "delete", "list"}, api.calls)
}

func TestDelete_NoNetworkWithoutTokenOrMatch(t *testing.T) {
	api := &fakeAPI{recipes: []models.Recipe{soup}}
	store := loggedIn()
	page, _, _ := newTestPage(api, store)
	require.NoError(t, page.Load(context.Background()))
	api.calls = nil

	assert.ErrorIs(t, page.Delete(context.Background(), ""), ErrMissingFields)
	assert.ErrorIs(t, page.Delete(context.Background(), "Pie"), ErrRecipeNotFound)

	require.NoError(t, store.Clear())
	assert.ErrorIs(t, page.Delete(context.Background(), "Soup"), ErrNotAuthenticated)

	assert.Empty(t, api.calls)
}

func TestDelete_ServerFailureKeepsCache(t *testing.T) {
	api := &fakeAPI{recipes: []models.Recipe{soup}}
	page, _, _ := newTestPage(api, loggedIn())
	require.NoError(t, page.Load(context.Background()))

	api.deleteErr = errors.New("failed to delete recipe (status 404)")
	require.Error(t, page.Delete(context.Background(), "Soup"))
	assert.Equal(t, []models.Recipe{soup}, page.Recipes())
}

func TestMutation_ReloadFailureStillSucceeds(t *testing.T) {
	tests := []struct {
		name      string
		action    func(ctx context.Context, page *Page) error
		wantCalls []string
	}{
		{
			name:      "add",
			action:    func(ctx context.Context, page *Page) error { return page.Add(ctx, "Bread", "Bake") },
			wantCalls: []string{"create", "list"},
		},
		{
			name:      "update",
			action:    func(ctx context.Context, page *Page) error { return page.Update(ctx, "Soup", "Simmer") },
			wantCalls: []string{"update", "list"},
		},
		{
			name:      "delete",
			action:    func(ctx context.Context, page *Page) error { return page.Delete(ctx, "Soup") },
			wantCalls: []string{"delete", "list"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{recipes: []models.Recipe{soup}}
			page, view, _ := newTestPage(api, loggedIn())
			require.NoError(t, page.Load(context.Background()))
			api.calls = nil

			api.listErr = errors.New("connection reset")
			require.NoError(t, tt.action(context.Background(), page))

			assert.Equal(t, tt.wantCalls, api.calls)
			// The previous listing stays
			assert.Equal(t, []models.Recipe{soup}, page.Recipes())
			assert.Len(t, view.renders, 1)
		})
	}
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name      string
		session   session.Session
		logoutErr error
		wantCalls []string
	}{
		{name: "logged in", session: session.Session{Token: "tok", IsAdmin: true}, wantCalls: []string{"logout"}},
		{name: "request fails", session: session.Session{Token: "tok"}, logoutErr: errors.New("connection refused"), wantCalls: []string{"logout"}},
		{name: "no token", session: session.Session{}, wantCalls: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{logoutErr: tt.logoutErr}
			store := session.NewMemoryStore(tt.session)
			page, _, nav := newTestPage(api, store)

			page.Logout(context.Background())

			assert.Equal(t, tt.wantCalls, api.calls)
			assert.Equal(t, []string{LoginPage}, nav.targets)

			s, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, session.Session{}, s)
		})
	}
}

func TestLogout_NavigatesWhenClearFails(t *testing.T) {
	store := &failingStore{}
	require.NoError(t, store.Save(session.Session{Token: "tok"}))
	page, _, nav := newTestPage(&fakeAPI{}, store)

	page.Logout(context.Background())

	assert.Equal(t, []string{LoginPage}, nav.targets)
}

func TestChrome(t *testing.T) {
	page, _, _ := newTestPage(&fakeAPI{}, session.NewMemoryStore(session.Session{Token: "tok", IsAdmin: true}))
	assert.Equal(t, Chrome{ShowLogout: true, ShowAdminLink: true}, page.Chrome())

	page, _, _ = newTestPage(&fakeAPI{}, session.NewMemoryStore(session.Session{}))
	assert.Equal(t, Chrome{}, page.Chrome())
}
