// Package recipes holds the recipe page controller: a cached copy of the user's
// recipes plus the actions that change them on the backend.
package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/recipebook/recipes/internal/cli/session"
	"github.com/recipebook/recipes/internal/models"
)

// LoginPage is where the page sends the user after logging out
const LoginPage = "../login/login-page.html"

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrRecipeNotFound   = errors.New("recipe not found")
)

// API is the part of the backend the page talks to
type API interface {
	ListRecipes(ctx context.Context, token string) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, token string, body models.CreateRecipeRequest) error
	UpdateRecipe(ctx context.Context, token string, id int64, body models.UpdateRecipeRequest) error
	DeleteRecipe(ctx context.Context, token string, id int64) error
	Logout(ctx context.Context, token string) error
}

// Renderer displays a list of recipes, replacing whatever it showed before
type Renderer interface {
	Render(recipes []models.Recipe)
}

// Navigator moves the user to another page
type Navigator interface {
	Navigate(target string)
}

// Chrome is the visibility of the page controls that depend on the session
type Chrome struct {
	ShowLogout    bool
	ShowAdminLink bool
}

// Page is the recipe page controller. It is not safe for concurrent use; actions are
// expected one at a time.
type Page struct {
	api      API
	sessions session.Store
	view     Renderer
	nav      Navigator
	log      zerolog.Logger

	recipes []models.Recipe
}

// NewPage creates a page controller with an empty cache
func NewPage(api API, sessions session.Store, view Renderer, nav Navigator, log zerolog.Logger) *Page {
	return &Page{
		api:      api,
		sessions: sessions,
		view:     view,
		nav:      nav,
		log:      log,
	}
}

// Recipes returns a copy of the cached list
func (p *Page) Recipes() []models.Recipe {
	out := make([]models.Recipe, len(p.recipes))
	copy(out, p.recipes)
	return out
}

// Chrome reports which session-dependent controls are visible
func (p *Page) Chrome() Chrome {
	s, err := p.sessions.Load()
	if err != nil {
		p.log.Warn().Err(err).Msg("Failed to read session")
		return Chrome{}
	}
	return Chrome{ShowLogout: s.LoggedIn(), ShowAdminLink: s.IsAdmin}
}

// token returns the bearer token or ErrNotAuthenticated
func (p *Page) token() (string, error) {
	s, err := p.sessions.Load()
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if !s.LoggedIn() {
		return "", ErrNotAuthenticated
	}
	return s.Token, nil
}

// Load fetches the collection, replaces the cache and renders it. On failure the cache
// and the current render stay as they were.
func (p *Page) Load(ctx context.Context) error {
	token, err := p.token()
	if err != nil {
		p.log.Info().Err(err).Msg("No auth token found")
		return err
	}

	recipes, err := p.api.ListRecipes(ctx, token)
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to fetch recipes")
		return err
	}

	p.recipes = recipes
	p.Render(p.recipes)
	return nil
}

// Search renders and returns the cached recipes whose name contains term, ignoring
// case. An empty term shows the whole cache.
func (p *Page) Search(term string) []models.Recipe {
	term = strings.ToLower(strings.TrimSpace(term))

	if term == "" {
		all := p.Recipes()
		p.Render(all)
		return all
	}

	filtered := []models.Recipe{}
	for _, r := range p.recipes {
		if strings.Contains(strings.ToLower(r.Name), term) {
			filtered = append(filtered, r)
		}
	}

	p.Render(filtered)
	return filtered
}

// Render shows recipes in the given order
func (p *Page) Render(recipes []models.Recipe) {
	if p.view == nil {
		p.log.Error().Msg("Recipe list element not found")
		return
	}
	p.view.Render(recipes)
}

// Add creates a recipe and reloads the list
func (p *Page) Add(ctx context.Context, name, instructions string) error {
	name = strings.TrimSpace(name)
	instructions = strings.TrimSpace(instructions)

	if name == "" || instructions == "" {
		p.log.Info().Msg("Please enter both recipe name and instructions")
		return ErrMissingFields
	}

	token, err := p.token()
	if err != nil {
		p.log.Info().Err(err).Msg("Please login first")
		return err
	}

	body := models.CreateRecipeRequest{Name: name, Instructions: instructions}
	if err := p.api.CreateRecipe(ctx, token, body); err != nil {
		p.log.Error().Err(err).Str("recipe", name).Msg("Failed to add recipe")
		return err
	}

	p.log.Info().Str("recipe", name).Msg("Recipe added")
	p.reload(ctx)
	return nil
}

// Update replaces the instructions of the cached recipe called name and reloads
func (p *Page) Update(ctx context.Context, name, instructions string) error {
	name = strings.TrimSpace(name)
	instructions = strings.TrimSpace(instructions)

	if name == "" || instructions == "" {
		p.log.Info().Msg("Please enter both recipe name and new instructions")
		return ErrMissingFields
	}

	token, err := p.token()
	if err != nil {
		p.log.Info().Err(err).Msg("Please login first")
		return err
	}

	recipe, ok := p.find(name)
	if !ok {
		p.log.Info().Str("recipe", name).Msg("Recipe not found")
		return ErrRecipeNotFound
	}

	body := models.UpdateRecipeRequest{Instructions: instructions}
	if err := p.api.UpdateRecipe(ctx, token, recipe.ID, body); err != nil {
		p.log.Error().Err(err).Str("recipe", name).Msg("Failed to update recipe")
		return err
	}

	p.log.Info().Str("recipe", name).Msg("Recipe updated")
	p.reload(ctx)
	return nil
}

// Delete removes the cached recipe called name and reloads
func (p *Page) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		p.log.Info().Msg("Please enter a recipe name to delete")
		return ErrMissingFields
	}

	token, err := p.token()
	if err != nil {
		p.log.Info().Err(err).Msg("Please login first")
		return err
	}

	recipe, ok := p.find(name)
	if !ok {
		p.log.Info().Str("recipe", name).Msg("Recipe not found")
		return ErrRecipeNotFound
	}

	if err := p.api.DeleteRecipe(ctx, token, recipe.ID); err != nil {
		p.log.Error().Err(err).Str("recipe", name).Msg("Failed to delete recipe")
		return err
	}

	p.log.Info().Str("recipe", name).Msg("Recipe deleted")
	p.reload(ctx)
	return nil
}

// Logout tells the backend the session is over, then clears the session and goes to
// the login page. The last two steps happen no matter how the request went.
func (p *Page) Logout(ctx context.Context) {
	defer func() {
		if err := p.sessions.Clear(); err != nil {
			p.log.Error().Err(err).Msg("Failed to clear session")
		}
		p.nav.Navigate(LoginPage)
	}()

	s, err := p.sessions.Load()
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to read session")
		return
	}
	if !s.LoggedIn() {
		return
	}

	if err := p.api.Logout(ctx, s.Token); err != nil {
		p.log.Error().Err(err).Msg("Logout error")
	}
}

// reload refreshes the list after a successful change. Load logs its own failure and
// leaves the previous render; the change itself already went through.
func (p *Page) reload(ctx context.Context) {
	_ = p.Load(ctx)
}

// find looks a recipe up by exact name in the cache. The first match wins.
func (p *Page) find(name string) (models.Recipe, bool) {
	for _, r := range p.recipes {
		if r.Name == name {
			return r, true
		}
	}
	return models.Recipe{}, false
}
