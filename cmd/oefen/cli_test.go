package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/oefen/catalog"
)

// testEnv points the config dir and state file at temp dirs.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("OEFEN_STORE_BACKEND", "file")
	t.Setenv("OEFEN_STORE_PATH", filepath.Join(dir, "state.json"))
	t.Setenv("OEFEN_LOG_LEVEL", "")
	t.Setenv("OEFEN_DATA_DIR", "")
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgPath, logDest, verbose, simple = "", "", false, false
	configForce = false
	importStartRow, importTarget = 2, ""

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCategories(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "WINDOW")
	for _, name := range catalog.Names() {
		assert.Contains(t, out, name)
	}
	assert.Regexp(t, `negation\s+│\s+3\s+│\s+Choose between niet and geen`, out)
}

func TestPracticeSimple(t *testing.T) {
	dir := testEnv(t)

	out, err := execute(t, ":skip\n:skip\n:skip\n:q\n", "practice", "comparative", "--simple")
	require.NoError(t, err)
	assert.Contains(t, out, "Practising comparative.")
	assert.Contains(t, out, "Score: 0/0 (0%)")

	raw, err := os.ReadFile(filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	var state map[string]string
	require.NoError(t, json.Unmarshal(raw, &state))
	var recent []string
	require.NoError(t, json.Unmarshal([]byte(state["exercise_history_comparative"]), &recent))
	assert.Len(t, recent, 3)

	out, err = execute(t, "", "history", "show", "comparative")
	require.NoError(t, err)
	assert.Contains(t, out, "comparative (3/3)")

	_, err = execute(t, "", "history", "clear", "comparative")
	require.NoError(t, err)
	out, err = execute(t, "", "history", "show", "comparative")
	require.NoError(t, err)
	assert.Contains(t, out, "comparative (0/3)")
}

func TestPracticeUnknownCategory(t *testing.T) {
	testEnv(t)
	_, err := execute(t, "", "practice", "klingon", "--simple")
	assert.ErrorContains(t, err, "unknown category")
}

func TestFilters(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "", "filters", "show", "verb_conjugation")
	require.NoError(t, err)
	assert.Contains(t, out, "verb_conjugation (default)")
	assert.Contains(t, out, "tense: present")

	_, err = execute(t, "", "filters", "set", "verb_conjugation", "tense", "present,past", "future")
	require.NoError(t, err)
	out, err = execute(t, "", "filters", "show", "verb_conjugation")
	require.NoError(t, err)
	assert.Contains(t, out, "verb_conjugation (saved)")
	assert.Contains(t, out, "tense: present, past, future")

	_, err = execute(t, "", "filters", "set", "verb_conjugation", "colour", "blue")
	assert.ErrorContains(t, err, "no \"colour\" filter")

	_, err = execute(t, "", "filters", "reset", "verb_conjugation")
	require.NoError(t, err)
	out, err = execute(t, "", "filters", "show", "verb_conjugation")
	require.NoError(t, err)
	assert.Contains(t, out, "verb_conjugation (default)")
}

func TestWord(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "", "word")
	require.NoError(t, err)
	assert.Regexp(t, `^(de|het) \S+: .+\n$`, out)
}

func TestImportVerbs(t *testing.T) {
	dir := testEnv(t)
	csvPath := filepath.Join(dir, "verbs.csv")
	target := filepath.Join(dir, "data", "verbs.json")
	rows := "infinitive,english,stem,level,is_separable,is_irregular,p1,p2,p3,p4,p5,p6,a1,a2,a3,a4,a5,a6,f1,f2,f3,f4,f5,f6\n" +
		"fietsen,to cycle,fiets,A1,false,false,fiets,fietst,fietst,fietsen,fietsen,fietsen,fietste,fietste,fietste,fietsten,fietsten,fietsten,heb gefietst,hebt gefietst,heeft gefietst,hebben gefietst,hebben gefietst,hebben gefietst\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(rows), 0644))

	out, err := execute(t, "", "import-verbs", csvPath, "--target", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Added 1 verbs")
	assert.Contains(t, out, "A1: 1")

	verbs, err := catalog.New(filepath.Dir(target)).Verbs()
	require.NoError(t, err)
	last := verbs[len(verbs)-1]
	assert.Equal(t, "fietsen", last.Infinitive)
	form, ok := last.Conjugation("future", "wij")
	require.True(t, ok)
	assert.Equal(t, "zullen fietsen", form)
}

func TestImportVerbsNeedsTarget(t *testing.T) {
	testEnv(t)
	_, err := execute(t, "", "import-verbs", "missing.csv")
	assert.ErrorContains(t, err, "data_dir")
}

func TestInitLua(t *testing.T) {
	dir := testEnv(t)
	cfgDir := filepath.Join(dir, "config", "oefen")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "init.lua"), []byte(`
oefen.capacity("comparative", 2)
oefen.print("veel succes")
`), 0644))

	out, err := execute(t, ":skip\n:skip\n:q\n", "practice", "comparative", "--simple")
	require.NoError(t, err)
	assert.Contains(t, out, "veel succes")

	out, err = execute(t, "", "history", "show", "comparative")
	require.NoError(t, err)
	assert.Contains(t, out, "comparative (2/2)")

	out, err = execute(t, "", "categories")
	require.NoError(t, err)
	assert.Regexp(t, `comparative\s+│\s+2\s+│`, out)
	assert.Regexp(t, `adverbs\s+│\s+10\s+│`, out)
}

func TestInvalidConfig(t *testing.T) {
	dir := testEnv(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacities:\n  adverbs: 0\n"), 0644))

	_, err := execute(t, "", "categories", "--config", path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestConfigInit(t *testing.T) {
	dir := testEnv(t)
	path := filepath.Join(dir, "config", "oefen", "config.yaml")

	out, err := execute(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	require.FileExists(t, path)

	_, err = execute(t, "", "config", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, "", "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	out, err = execute(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# "+path)
	assert.Contains(t, out, "backend: file")

	_, err = execute(t, "", "categories", "--config", path)
	require.NoError(t, err)
}

func TestLogFlag(t *testing.T) {
	dir := testEnv(t)
	path := filepath.Join(dir, "logs", "run.log")

	_, err := execute(t, "", "--log", path, "-v", "categories")
	require.NoError(t, err)
	assert.FileExists(t, path)
}
