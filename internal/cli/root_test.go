package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitwise/internal/actions"
	"gitwise/internal/api"
	"gitwise/internal/models"
	"gitwise/internal/notify"
	"gitwise/internal/session"
	"gitwise/internal/store"
)

// newBackendServer serves a minimal slice of the REST API with one
// post, enough for bootstrap and the read commands.
func newBackendServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	// go1.21 ServeMux has no method patterns; guard methods explicitly.
	requireMethod := func(method string, h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
				return
			}
			h(w, r)
		}
	}
	mux.HandleFunc("/api/posts", requireMethod(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"posts": []models.Post{{ID: 1, Title: "todo app", Description: "a list", RepoURL: "https://github.com/dev/todo"}},
		})
	}))
	mux.HandleFunc("/api/login", requireMethod(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"token": "opaque-token",
			"user":  models.User{ID: 7, Username: "dev", Email: "dev@example.com"},
		})
	}))
	mux.HandleFunc("/api/favorites", requireMethod(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"favorites": []models.Favorite{}})
	}))
	mux.HandleFunc("/api/post/1/comments", requireMethod(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"comments": []models.Comment{{ID: 2, PostID: 1, Text: "neat", Author: models.CommentAuthor{Username: "other"}}},
		})
	}))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// newTestFactory wires a real client against the test server with an
// isolated snapshot file.
func newTestFactory(t *testing.T, backendURL string) AppFactory {
	t.Helper()
	snapshotPath := filepath.Join(t.TempDir(), "session.db")
	return func(ctx context.Context, opts *RootOptions, out, errOut io.Writer) (*App, error) {
		client := api.NewClient(backendURL, 5*time.Second)
		snaps, err := store.OpenSnapshotStore(snapshotPath)
		if err != nil {
			return nil, err
		}
		svc := actions.NewService(client, store.New(), notify.Silent{}, actions.Options{
			PerPage:     2,
			FrontendURL: "https://gitwise.example",
		})
		mgr := session.NewManager(svc, client, snaps)
		if err := mgr.Bootstrap(ctx); err != nil {
			return nil, err
		}
		return &App{
			Client:  client,
			Service: svc,
			Manager: mgr,
			Out: &OutputFormatter{
				Format:    opts.Format,
				Writer:    out,
				ErrWriter: errOut,
				Verbose:   opts.Verbose,
			},
		}, nil
	}
}

func runCommand(t *testing.T, factory AppFactory, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(factory)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	server := newBackendServer(t)
	_, err := runCommand(t, newTestFactory(t, server.URL), "--format", "yaml", "posts", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPostsListText(t *testing.T) {
	server := newBackendServer(t)
	out, err := runCommand(t, newTestFactory(t, server.URL), "posts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 todo app")
	assert.Contains(t, out, "https://github.com/dev/todo")
}

func TestPostsListJSON(t *testing.T) {
	server := newBackendServer(t)
	out, err := runCommand(t, newTestFactory(t, server.URL), "--format", "json", "posts", "list")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestLoginPersistsSessionAcrossCommands(t *testing.T) {
	server := newBackendServer(t)
	factory := newTestFactory(t, server.URL)

	out, err := runCommand(t, factory, "login", "dev@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as dev")

	// a fresh command run restores the session from the snapshot
	out, err = runCommand(t, factory, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "dev <dev@example.com>")
}

func TestWhoamiLoggedOut(t *testing.T) {
	server := newBackendServer(t)
	_, err := runCommand(t, newTestFactory(t, server.URL), "whoami")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCommentsListText(t *testing.T) {
	server := newBackendServer(t)
	out, err := runCommand(t, newTestFactory(t, server.URL), "comments", "list", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "#2 other: neat")
}

func TestPostsDeleteRejectsBadID(t *testing.T) {
	server := newBackendServer(t)
	_, err := runCommand(t, newTestFactory(t, server.URL), "posts", "delete", "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
