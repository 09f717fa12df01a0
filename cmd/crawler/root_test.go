package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writeups-article-list/internal/config"
)

func TestBuildConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := buildConfig(cmd, nil)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultURL, cfg.URL)
	assert.Equal(t, 100*time.Millisecond, cfg.ScrollInterval)
	assert.Equal(t, config.EmitFile, cfg.Emit)
	require.NoError(t, cfg.Validate())
}

func TestBuildConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: https://example.com/list\nscroll_interval: 1s\nsite_title: From File\n"), 0o644))

	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-c", path, "--interval", "250ms", "--format", "csv", "-o", "out"}))

	cfg, err := buildConfig(cmd, []string{"https://medium.com/other"})
	require.NoError(t, err)

	assert.Equal(t, "https://medium.com/other", cfg.URL, "positional url wins")
	assert.Equal(t, 250*time.Millisecond, cfg.ScrollInterval)
	assert.Equal(t, "From File", cfg.SiteTitle, "unset flags keep file values")
	assert.Equal(t, []string{"csv"}, cfg.Formats)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestBuildConfig_MissingExplicitFile(t *testing.T) {
	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}))

	_, err := buildConfig(cmd, nil)
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestRootCmd_InvalidConfigFailsBeforeBrowser(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--interval", "0s"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.ErrorIs(t, err, config.ErrInvalidInterval)
}

func TestIsStopCommand(t *testing.T) {
	for _, in := range []string{"", "stop", " STOP \n", "stopScript()", "q"} {
		assert.True(t, isStopCommand(in), "%q", in)
	}
	for _, in := range []string{"go", "stopp", "continue"} {
		assert.False(t, isStopCommand(in), "%q", in)
	}
}

func TestStopTrigger_InputFiresOnce(t *testing.T) {
	trig := newStopTrigger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	trig.watchInput(strings.NewReader("hello\nstop\n"))
	trig.fire("signal")

	select {
	case <-trig.C():
	default:
		t.Fatal("expected stop channel to be closed")
	}
}

func TestStopTrigger_EOFDoesNotFire(t *testing.T) {
	trig := newStopTrigger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	trig.watchInput(strings.NewReader("hello\n"))

	select {
	case <-trig.C():
		t.Fatal("stop fired without a stop command")
	default:
	}
}
