package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/config"
	"github.com/dmitrijs2005/authdemo/internal/client/jar"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/authdemo/internal/client/repositories/history"
	"github.com/dmitrijs2005/authdemo/internal/client/services"
	"github.com/dmitrijs2005/authdemo/internal/client/state"
	"github.com/dmitrijs2005/authdemo/internal/logging"
	"github.com/dmitrijs2005/authdemo/internal/server"
	srvconfig "github.com/dmitrijs2005/authdemo/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startAPI(t *testing.T) string {
	t.Helper()
	cfg := &srvconfig.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = 4
	srv := httptest.NewServer(server.NewTestApp(cfg).Handler())
	t.Cleanup(srv.Close)
	return srv.URL + cfg.Prefix
}

// newTestApp wires a real App against baseURL with an in-memory database,
// scripted input and captured output.
func newTestApp(t *testing.T, baseURL, input string) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)

	j, err := jar.New(ctx, cookies.NewSQLiteRepository(db), logging.Discard())
	require.NoError(t, err)

	store := state.NewStore(state.State{})
	hc := client.NewHTTPClient(baseURL, j, 0, logging.Discard())
	as := services.NewAuthService(hc, store, history.NewSQLiteRepository(db), logging.Discard())

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = baseURL

	var out bytes.Buffer
	a := newApp(cfg, as, store, db, j, strings.NewReader(input), &out, logging.Discard())
	t.Cleanup(a.Close)
	return a, &out
}

func TestApp_Session(t *testing.T) {
	prompts := captureOutput(t)
	base := startAPI(t)

	input := strings.Join([]string{
		"email a@b.com",
		"password x",
		"signup",
		"id 1",
		"get",
		"signout",
		"id 99",
		"remove",
		"exit",
	}, "\n")
	a, out := newTestApp(t, base, input)

	a.Run(context.Background())

	text := out.String()
	// startup probe: not authenticated is a response, not an error
	assert.Contains(t, text, `"error": "not authenticated"`)
	assert.Contains(t, text, "--- Currently Signed In ---\nUser ID: 1\nEmail: a@b.com\n")
	assert.Contains(t, text, "--- Error ---\nHTTP error! status: 404\n")
	assert.Contains(t, prompts.String(), "authdemo (a@b.com)> ")
	assert.True(t, a.store.Snapshot().Anonymous())
	assert.Nil(t, a.db, "Run closes the database")
}

func TestApp_FormAndHistory(t *testing.T) {
	captureOutput(t)
	base := startAPI(t)

	a, out := newTestApp(t, base, "")
	ctx := context.Background()

	require.NoError(t, a.SetEmail(ctx, []string{"a@b.com"}))
	require.NoError(t, a.SetPassword(ctx, []string{"pw"}))
	require.NoError(t, a.SetTargetUserID(ctx, []string{"7"}))
	require.NoError(t, a.ShowForm(ctx))
	assert.Contains(t, out.String(), "Email: a@b.com\nPassword: **\nUser ID: 7\n")

	out.Reset()
	require.NoError(t, a.History(ctx, nil))
	assert.Equal(t, "No requests yet.\n", out.String())

	require.NoError(t, a.GetAllUsers(ctx))
	require.Error(t, a.GetUser(ctx))

	out.Reset()
	require.NoError(t, a.History(ctx, []string{"1"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "getUser")
	assert.Contains(t, lines[0], "/7")
	assert.Contains(t, lines[0], "HTTP error! status: 404")

	out.Reset()
	require.Error(t, a.History(ctx, []string{"zero"}))
	assert.Contains(t, out.String(), "Usage: history")
}

func TestApp_ResetForgetsSession(t *testing.T) {
	captureOutput(t)
	base := startAPI(t)

	a, out := newTestApp(t, base, "")
	ctx := context.Background()

	require.NoError(t, a.SetEmail(ctx, []string{"a@b.com"}))
	require.NoError(t, a.SetPassword(ctx, []string{"pw"}))
	require.NoError(t, a.CreateUser(ctx))
	require.True(t, a.isSignedIn())

	out.Reset()
	require.NoError(t, a.Reset(ctx))
	assert.Contains(t, out.String(), "Cookies cleared.")
	assert.False(t, a.isSignedIn())

	// the cookie is gone, so the server no longer recognises us
	require.Error(t, a.WhoAmI(ctx))
	assert.False(t, a.isSignedIn())
	assert.Contains(t, out.String(), `"error": "not authenticated"`)
}

func TestApp_PromptedInput(t *testing.T) {
	captureOutput(t)

	oldText, oldPw := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = oldText, oldPw })

	var prompts []string
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		prompts = append(prompts, prompt)
		return "typed", nil
	}
	getPassword = func(*bufio.Reader, io.Writer) ([]byte, error) { return []byte("hidden"), nil }

	a, _ := newTestApp(t, "http://127.0.0.1:1/auth", "")
	ctx := context.Background()

	require.NoError(t, a.SetEmail(ctx, nil))
	require.NoError(t, a.SetTargetUserID(ctx, nil))
	require.NoError(t, a.SetPassword(ctx, nil))

	f := a.store.Snapshot().Form
	assert.Equal(t, state.Form{Email: "typed", Password: "hidden", TargetUserID: "typed"}, f)
	assert.Equal(t, []string{"Email", "User ID"}, prompts)
}

func TestApp_TransportErrorIsShown(t *testing.T) {
	captureOutput(t)
	a, out := newTestApp(t, "http://127.0.0.1:1/auth", "")

	require.Error(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "--- Error ---")
	assert.NotContains(t, out.String(), "--- Response ---")
}

func TestApp_GetStatus(t *testing.T) {
	a, _ := newTestApp(t, "http://127.0.0.1:1/auth", "")
	assert.Equal(t, "", a.getStatus())

	a.store.Dispatch(state.SessionEstablished{User: models.User{ID: "1", Email: "a@b.com"}})
	assert.Equal(t, " (a@b.com)", a.getStatus())
	assert.True(t, a.isSignedIn())
}

func TestNewApp(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = "http://127.0.0.1:1/auth"
	cfg.DBPath = filepath.Join(t.TempDir(), "nested", "authdemo.db")
	cfg.LogLevel = "error"

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	a.Close()
	a.Close()
}

func TestNewApp_BadDatabase(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	cfg.DBPath = filepath.Join(blocker, "x.db")
	cfg.LogLevel = "error"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}
