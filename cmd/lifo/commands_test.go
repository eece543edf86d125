package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mholzen/lifo/pkg/script"
)

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.Reader = strings.NewReader(stdin)

	err := app.Run(context.Background(), append([]string{"lifo", "--log-level", "error"}, args...))
	return out.String(), err
}

const referenceOutput = `pop -> none
pop -> 3
pop -> 2
pop -> 5
pop -> 4
pop -> 1
pop -> none
`

func TestScenarioCommand(t *testing.T) {
	for _, variant := range []string{"linked", "arena"} {
		t.Run(variant, func(t *testing.T) {
			out, err := runApp(t, "", "scenario", "--variant", variant)
			require.NoError(t, err)
			assert.Equal(t, referenceOutput, out)
		})
	}
}

func TestScenarioCommand_JSON(t *testing.T) {
	out, err := runApp(t, "", "scenario", "--format", "json")
	require.NoError(t, err)

	var steps []script.Step
	require.NoError(t, json.Unmarshal([]byte(out), &steps))
	require.Len(t, steps, 7)
	assert.False(t, steps[0].Present)
	require.NotNil(t, steps[1].Value)
	assert.Equal(t, int32(3), *steps[1].Value)
}

func TestRunCommand_Stdin(t *testing.T) {
	out, err := runApp(t, "push 10 20\npop\ndrop\npop\n", "run")
	require.NoError(t, err)
	assert.Equal(t, "pop -> 20\ndrop -> released 1\npop -> none\n", out)
}

func TestRunCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.txt")
	require.NoError(t, os.WriteFile(path, []byte(script.ReferenceScenario), 0o644))

	out, err := runApp(t, "", "run", "--variant", "arena", path)
	require.NoError(t, err)
	assert.Equal(t, referenceOutput, out)
}

func TestRunCommand_Errors(t *testing.T) {
	_, err := runApp(t, "push 1\nswap\n", "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2: unknown operation: swap")

	_, err = runApp(t, "", "run", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open script")

	_, err = runApp(t, "pop\n", "run", "--variant", "tree")
	assert.EqualError(t, err, "variant must be 'linked' or 'arena'")

	_, err = runApp(t, "pop\n", "run", "--format", "xml")
	assert.EqualError(t, err, "format must be 'text' or 'json'")
}

func TestTeardownCommand(t *testing.T) {
	for _, variant := range []string{"linked", "arena"} {
		t.Run(variant, func(t *testing.T) {
			out, err := runApp(t, "", "teardown", "--count", "150000", "--variant", variant, "--format", "json")
			require.NoError(t, err)

			var report TeardownReport
			require.NoError(t, json.Unmarshal([]byte(out), &report))
			assert.Equal(t, variant, report.Variant)
			assert.Equal(t, 150000, report.Count)
			assert.Equal(t, 150000, report.Released)
		})
	}
}

func TestTeardownCommand_Text(t *testing.T) {
	out, err := runApp(t, "", "teardown", "-n", "12345")
	require.NoError(t, err)
	assert.Contains(t, out, "linked: released 12,345 of 12,345 nodes in ")
}

func TestTeardownCommand_NegativeCount(t *testing.T) {
	_, err := runApp(t, "", "teardown", "--count=-1")
	assert.EqualError(t, err, "count must not be negative")
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lifo version dev")
}

func TestGetCommands_Names(t *testing.T) {
	var names []string
	for _, c := range getCommands() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"scenario", "run", "teardown", "mcp", "serve", "version"}, names)
}
