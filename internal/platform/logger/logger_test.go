package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level        string
		debugEnabled bool
		warnEnabled  bool
	}{
		{level: "debug", debugEnabled: true, warnEnabled: true},
		{level: "info", debugEnabled: false, warnEnabled: true},
		{level: "warn", debugEnabled: false, warnEnabled: true},
		{level: "error", debugEnabled: false, warnEnabled: false},
		// An invalid level falls back to info instead of failing startup.
		{level: "verbose", debugEnabled: false, warnEnabled: true},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			log := Setup(tc.level)
			require.NotNil(t, log)

			ctx := context.Background()
			assert.Equal(t, tc.debugEnabled, log.Enabled(ctx, slog.LevelDebug),
				"debug enablement for level %q", tc.level)
			assert.Equal(t, tc.warnEnabled, log.Enabled(ctx, slog.LevelWarn),
				"warn enablement for level %q", tc.level)
		})
	}
}

func TestSetupSetsDefault(t *testing.T) {
	log := Setup("info")
	assert.Same(t, log, slog.Default(), "Setup should install the logger as process default")
}

func TestContextRoundTrip(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), base)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, base, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}

func TestFromContextOrDefault(t *testing.T) {
	stored := slog.New(slog.NewTextHandler(io.Discard, nil))
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithLogger(context.Background(), stored)
	assert.Same(t, stored, FromContextOrDefault(ctx, fallback),
		"a context logger wins over the fallback")

	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))

	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil),
		"with neither, the process default is used")
}
