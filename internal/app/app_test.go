package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"docvault/internal/config"
	"docvault/internal/devserver"
	"docvault/internal/models"
	"docvault/internal/session"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPhone = "9999999999"
	testOTP   = "123456"
)

// newTestApp stands up the mock backend and an App pointed at it, with the
// session file under a scratch dir.
func newTestApp(t *testing.T) (*App, *config.Config) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	router, err := devserver.NewRouter(log, devserver.NewStore(testOTP), prometheus.NewRegistry())
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Env: "local",
		API: config.API{
			BaseURL: srv.URL,
			Timeout: 5 * time.Second,
		},
		Session: config.Session{
			Path: filepath.Join(t.TempDir(), "session"),
		},
	}

	return New(log, cfg), cfg
}

func login(t *testing.T, a *App) {
	t.Helper()

	ctx := context.Background()

	_, err := a.Auth.GenerateOTP(ctx, testPhone)
	require.NoError(t, err)

	token, err := a.Auth.ValidateOTP(ctx, testPhone, testOTP)
	require.NoError(t, err)

	require.NoError(t, a.Session.SignIn(ctx, token))
}

func TestApp_LoginFlow(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)

	ctx := context.Background()

	require.Equal(t, session.StateUnauthenticated, a.Session.Restore(ctx))

	notice, err := a.Auth.GenerateOTP(ctx, testPhone)
	require.NoError(t, err)
	assert.NotEmpty(t, notice)

	token, err := a.Auth.ValidateOTP(ctx, testPhone, testOTP)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, a.Session.SignIn(ctx, token))
	assert.Equal(t, session.StateAuthenticated, a.Session.State())
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	t.Parallel()

	a, cfg := newTestApp(t)

	login(t, a)

	// A second App over the same config restores the persisted session.
	restarted := New(a.Log, cfg)

	state := restarted.Session.Restore(context.Background())
	assert.Equal(t, session.StateAuthenticated, state)

	token, ok := restarted.Session.Token()
	assert.True(t, ok)
	assert.NotEmpty(t, token)
}

func TestApp_WrongCodeKeepsSessionOut(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)

	ctx := context.Background()

	_, err := a.Auth.GenerateOTP(ctx, testPhone)
	require.NoError(t, err)

	_, err = a.Auth.ValidateOTP(ctx, testPhone, "000000")
	require.Error(t, err)

	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "incorrect one-time code", apiErr.Message)

	assert.Equal(t, session.StateUnauthenticated, a.Session.Restore(ctx))
}

func TestApp_DocumentRoundTrip(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)

	login(t, a)

	ctx := context.Background()

	meta := models.DocumentMeta{
		MajorHead:    models.MajorProfessional,
		MinorHead:    "Accounts",
		DocumentDate: mustDate(t, "2024-05-10"),
		Remarks:      "vendor invoice",
		Tags:         []models.Tag{{Name: "invoice"}, {Name: "vendor"}},
	}

	err := a.Documents.SaveDocumentEntry(ctx, strings.NewReader("invoice body"), "invoice.pdf", "application/pdf", meta)
	require.NoError(t, err)

	tags, err := a.Documents.DocumentTags(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []models.Tag{{Name: "invoice"}, {Name: "vendor"}}, tags)

	records, err := a.Documents.SearchDocumentEntry(ctx, models.SearchFilter{
		MajorHead: models.MajorProfessional,
		Tags:      []models.Tag{{Name: "invoice"}},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "vendor invoice", records[0].Remarks)
	assert.Equal(t, testPhone, records[0].UploadedBy)
	require.NotEmpty(t, records[0].FileURL)

	var buf bytes.Buffer
	n, err := a.Documents.DownloadFile(ctx, records[0].FileURL, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("invoice body")), n)
	assert.Equal(t, "invoice body", buf.String())
}

func TestApp_DocumentOpsRequireSession(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)

	ctx := context.Background()

	a.Session.Restore(ctx)

	_, err := a.Documents.DocumentTags(ctx, "")
	assert.ErrorIs(t, err, models.ErrSessionMissing)

	_, err = a.Documents.SearchDocumentEntry(ctx, models.SearchFilter{})
	assert.ErrorIs(t, err, models.ErrSessionMissing)
}

func TestApp_SignOutForgetsSession(t *testing.T) {
	t.Parallel()

	a, cfg := newTestApp(t)

	login(t, a)

	ctx := context.Background()

	require.NoError(t, a.Session.SignOut(ctx))
	assert.Equal(t, session.StateUnauthenticated, a.Session.State())

	restarted := New(a.Log, cfg)
	assert.Equal(t, session.StateUnauthenticated, restarted.Session.Restore(ctx))
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()

	d, err := models.ParseDate(s)
	require.NoError(t, err)

	return d
}
