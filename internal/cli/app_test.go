package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/istatata/bayan/internal/config"
	"github.com/istatata/bayan/internal/logging"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = ":memory:"

	app, err := NewApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { app.close() })
	return app
}

func TestBootstrap_LoadsCollectionsThenRestores(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, app.Bootstrap(context.Background()))

	assert.Len(t, app.users.Users(), 2)
	assert.Len(t, app.lessons.Lessons(), 3)
	assert.True(t, app.session.Initialized())
	assert.False(t, app.isLoggedIn())
}

func TestStatus_FollowsSessionSnapshots(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Bootstrap(ctx))
	assert.Equal(t, "anonymous", app.status())

	require.NoError(t, app.session.Login(ctx, app.users.Users(), "student@ista.ma", "123"))
	assert.Equal(t, "أحمد طالب (trainee)", app.status())
	assert.True(t, app.isLoggedIn())

	require.NoError(t, app.session.Logout(ctx))
	assert.Equal(t, "anonymous", app.status())
	assert.False(t, app.isLoggedIn())
}
