package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/xes2arff/pkg/output"
)

const sampleLog = `<?xml version="1.0" encoding="UTF-8"?>
<log xes.version="1.0" xmlns="http://www.xes-standard.org/">
  <trace>
    <event>
      <string key="concept:name" value="register"/>
      <date key="time:timestamp" value="2020-01-01T10:00:00.000+01:00"/>
      <string key="org:resource" value="Alice"/>
      <int key="items" value="2"/>
    </event>
    <event>
      <string key="concept:name" value="check"/>
      <date key="time:timestamp" value="2020-01-01T11:00:00.000+01:00"/>
      <string key="org:resource" value="Bob"/>
    </event>
    <event>
      <string key="concept:name" value="archive"/>
    </event>
  </trace>
</log>
`

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	resetFlags(rootCmd)
	cfgFile = ""

	var out bytes.Buffer
	prevOut, prevErr := output.Stdout, output.Stderr
	output.Stdout, output.Stderr = &out, &out
	output.DisableColor()
	t.Cleanup(func() { output.Stdout, output.Stderr = prevOut, prevErr })

	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))

	err := rootCmd.Execute()
	return out.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.xes")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))
	return path
}

func TestCommandsRegistered(t *testing.T) {
	expected := map[string]bool{"convert": false, "keys": false, "seed": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := expected[c.Name()]; ok {
			expected[c.Name()] = true
		}
	}
	for name, found := range expected {
		assert.True(t, found, "expected command %q to be registered with root command", name)
	}
}

func TestConvert_WritesTables(t *testing.T) {
	data := writeSample(t)
	results := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "", "convert", "--data", data, "--results", results, "--classifier", "org:resource")
	require.NoError(t, err)

	assert.Contains(t, out, "Your file was saved to "+filepath.Join(results, "Alice.arff"))
	assert.Contains(t, out, "Your file was saved to "+filepath.Join(results, "Bob.arff"))
	assert.Contains(t, out, "skipped 1 of 3 events")

	alice, err := os.ReadFile(filepath.Join(results, "Alice.arff"))
	require.NoError(t, err)
	assert.Contains(t, string(alice), `@ATTRIBUTE "items" NUMERIC`)
	assert.Contains(t, string(alice), `"register","2020-01-01T10:00:00.000+01:00","Alice",2`)
}

func TestConvert_InteractiveClassifier(t *testing.T) {
	data := writeSample(t)
	results := filepath.Join(t.TempDir(), "out")

	out, err := execute(t, "department\norg:resource\n", "convert", "-d", data, "-r", results)
	require.NoError(t, err)

	assert.Contains(t, out, "Which event attribute do you want to use")
	assert.Contains(t, out, "Chosen attribute is not contained in the file.")
	_, err = os.Stat(filepath.Join(results, "Bob.arff"))
	assert.NoError(t, err)
}

func TestConvert_MissingPaths(t *testing.T) {
	out, err := execute(t, "", "convert", "--data", "log.xes")
	require.Error(t, err)
	assert.Equal(t, errMissingPaths, err)
	assert.Contains(t, out, "Usage:")
}

func TestConvert_NoFile(t *testing.T) {
	out, err := execute(t, "", "convert", "--data", filepath.Join(t.TempDir(), "missing.xes"), "--results", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "No file found.")
	assert.NotContains(t, out, "Usage:")
}

func TestConvert_ResultsFromConfig(t *testing.T) {
	data := writeSample(t)
	results := filepath.Join(t.TempDir(), "configured")
	cfgPath := filepath.Join(t.TempDir(), "xes2arff.yaml")
	content := "convert:\n  results: " + results + "\n  classifier: org:resource\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	_, err := execute(t, "", "convert", "--config", cfgPath, "--data", data)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(results, "Alice.arff"))
	assert.NoError(t, err)
}

func TestKeys_YAML(t *testing.T) {
	data := writeSample(t)

	out, err := execute(t, "", "keys", "--data", data, "--output", "yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "- key: concept:name\n  occurrences: 3\n  type: string\n")
	assert.Contains(t, out, "- key: items\n  occurrences: 1\n  type: int\n")
}

func TestKeys_Table(t *testing.T) {
	data := writeSample(t)

	out, err := execute(t, "", "keys", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "org:resource")
}

func TestKeys_RequiresData(t *testing.T) {
	_, err := execute(t, "", "keys")
	require.Error(t, err)
}

func TestSeed_ThenConvert(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "seeded.xes")
	results := filepath.Join(dir, "out")

	out, err := execute(t, "", "seed", "--out", logPath, "--traces", "4", "--events", "3", "--resources", "2", "--missing-rate", "0", "--seed", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 12 events (4 traces)")

	_, err = execute(t, "", "convert", "--data", logPath, "--results", results, "--classifier", "org:resource", "--strict")
	require.NoError(t, err)

	entries, err := os.ReadDir(results)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
	assert.LessOrEqual(t, len(entries), 2)
}

func TestSeed_InvalidSettings(t *testing.T) {
	_, err := execute(t, "", "seed", "--out", filepath.Join(t.TempDir(), "x.xes"), "--missing-rate", "2")
	require.Error(t, err)
}

func TestSeed_RequiresOut(t *testing.T) {
	_, err := execute(t, "", "seed")
	require.Error(t, err)
}
