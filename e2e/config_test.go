//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInitWritesConfig(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace := tf.CreateTestWorkspace()
	require.NoError(t, tf.StartApp("-init"))

	exited, err := tf.WaitExit(2 * time.Second)
	require.True(t, exited, "-init should exit")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(workspace, "dragsort.toml"))
	require.NoError(t, err, "config file should be written")
	require.Contains(t, string(data), "selector")
}

func TestConfigItemsAreUsed(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	tf.CreateTestWorkspace()
	tf.WriteFile("dragsort.toml", "items = ['red', 'green', 'blue']\n")

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("green"))
	require.True(t, tf.SeePlain("3 items"))
}

func TestInvalidConfigFails(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	tf.CreateTestWorkspace()
	tf.WriteFile("dragsort.toml", "delta = -1.0\n")

	require.NoError(t, tf.StartApp("one"))

	exited, err := tf.WaitExit(2 * time.Second)
	require.True(t, exited, "app should refuse an invalid config")
	require.Error(t, err)
	require.True(t, tf.SeePlain("Error loading config"))
}

func TestListFromHTMLFile(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	tf.CreateTestWorkspace()
	tf.WriteFile("list.html", `<p>intro</p><ol><li>first</li><li>second</li></ol>`)

	require.NoError(t, tf.StartApp("-file", "list.html"))
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("second"))

	require.NoError(t, tf.MoveDown())
	require.True(t, tf.OutputContainsPlain("Order: second, first", 3*time.Second))
}
