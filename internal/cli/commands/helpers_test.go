package commands

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/recipebook/recipes/internal/cli/client"
	"github.com/recipebook/recipes/internal/cli/config"
	"github.com/recipebook/recipes/internal/cli/session"
	"github.com/recipebook/recipes/internal/testbackend"
)

// testEnv is a running backend with one user and a backend handle pointing at it
type testEnv struct {
	api   *testbackend.Backend
	user  *testbackend.User
	token string
	b     *backend
}

func newTestEnv(t *testing.T, loggedIn bool) *testEnv {
	t.Helper()

	api, err := testbackend.New(zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = api.Close() })

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	user, err := api.CreateUser("ada", "ada@example.com", "secret", false)
	require.NoError(t, err)
	token, err := api.Token(user)
	require.NoError(t, err)

	var s session.Session
	if loggedIn {
		s.Token = token
	}

	// Prompts must never block a test
	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = orig })

	return &testEnv{
		api:   api,
		user:  user,
		token: token,
		b: &backend{
			Server:   config.Server{URL: srv.URL, Alias: "test"},
			Client:   client.New(srv.URL, 0),
			Sessions: session.NewMemoryStore(s),
		},
	}
}

func (e *testEnv) addRecipe(t *testing.T, name, instructions string) {
	t.Helper()
	_, err := e.api.AddRecipe(e.user, name, instructions)
	require.NoError(t, err)
}

// newTestCmd returns a bare command with captured output
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}
