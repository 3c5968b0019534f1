package lua

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/oefen/drill"
)

// testCase represents a single test case from JSON
type testCase struct {
	Name               string                         `json:"name"`
	SetupLua           any                            `json:"setup_lua"`
	SetupError         bool                           `json:"setup_error,omitempty"`
	Normalize          *normalizeCase                 `json:"normalize,omitempty"`
	Answers            []answerCase                   `json:"answers,omitempty"`
	ExpectedPrints     []string                       `json:"expected_prints,omitempty"`
	ExpectedCapacities map[string]int                 `json:"expected_capacities,omitempty"`
	ExpectedFilters    map[string]map[string][]string `json:"expected_filters,omitempty"`
}

type normalizeCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

type answerCase struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Answer   string `json:"answer"`
	Expected string `json:"expected"`
	Correct  bool   `json:"correct"`
	Score    int    `json:"score"`
	Total    int    `json:"total"`
}

func (a answerCase) result() drill.Result {
	return drill.Result{
		ExerciseID: a.ID,
		Category:   a.Category,
		Answer:     a.Answer,
		Expected:   a.Expected,
		Correct:    a.Correct,
		Score:      drill.Score{Correct: a.Score, Total: a.Total},
	}
}

type testDataFile struct {
	Tests []testCase `json:"tests"`
}

// setupTest creates an initialized engine over a mock host.
func setupTest(t *testing.T) (*Engine, *MockHost) {
	t.Helper()
	host := NewMockHost()
	engine := NewEngine(host)
	require.NoError(t, engine.Init())
	t.Cleanup(engine.Close)
	return engine, host
}

func loadTestData(t *testing.T, filename string) testDataFile {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	require.NoError(t, err)

	var testData testDataFile
	require.NoError(t, json.Unmarshal(data, &testData), "parsing %s", filename)
	return testData
}

// executeSetupLua handles both string and []string Lua setup code
func executeSetupLua(engine *Engine, setup any) error {
	switch code := setup.(type) {
	case string:
		return engine.DoString("setup", code)
	case []any:
		for _, line := range code {
			if err := engine.DoString("setup", line.(string)); err != nil {
				return err
			}
		}
	}
	return nil
}

func executeTest(t *testing.T, tt testCase) {
	t.Run(tt.Name, func(t *testing.T) {
		engine, host := setupTest(t)

		err := executeSetupLua(engine, tt.SetupLua)
		if tt.SetupError {
			require.Error(t, err)
			return
		}
		require.NoError(t, err)

		if tt.Normalize != nil {
			assert.Equal(t, tt.Normalize.Expected, engine.Normalize(tt.Normalize.Input))
		}
		for _, a := range tt.Answers {
			engine.OnAnswer(a.result())
		}

		if tt.ExpectedPrints != nil {
			assert.Equal(t, tt.ExpectedPrints, host.DrainPrintCalls())
		}
		if tt.ExpectedCapacities != nil {
			assert.Equal(t, tt.ExpectedCapacities, host.Capacities)
		}
		if tt.ExpectedFilters != nil {
			assert.Equal(t, tt.ExpectedFilters, host.Filters)
		}
	})
}

// TestFeatures runs all feature tests from JSON files
func TestFeatures(t *testing.T) {
	files, err := os.ReadDir("testdata")
	require.NoError(t, err)

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), "_tests.json") {
			continue
		}
		feature := strings.TrimSuffix(file.Name(), "_tests.json")
		t.Run(feature, func(t *testing.T) {
			for _, tt := range loadTestData(t, file.Name()).Tests {
				executeTest(t, tt)
			}
		})
	}
}

func TestHandlerErrorsAreReported(t *testing.T) {
	engine, host := setupTest(t)
	require.NoError(t, engine.DoString("init", `
		oefen.on("answer", function(r) error("boom") end)
		oefen.on("answer", function(r) oefen.print("still runs") end)
		oefen.normalize(function(s) error("bad") end)
	`))

	engine.OnAnswer(drill.Result{ExerciseID: "1"})
	assert.Equal(t, "ik", engine.Normalize("ik"))

	prints := host.DrainPrintCalls()
	require.Len(t, prints, 3)
	assert.Contains(t, prints[0], "boom")
	assert.Equal(t, "still runs", prints[1])
	assert.Contains(t, prints[2], "bad")
}

func TestAnswerExplanation(t *testing.T) {
	engine, host := setupTest(t)
	require.NoError(t, engine.DoString("init", `
		oefen.on("answer", function(r) oefen.print(r.answer .. ": " .. r.explanation) end)
	`))

	engine.OnAnswer(drill.Result{Answer: "geen", Explanation: "geen before a noun"})
	assert.Equal(t, []string{"geen: geen before a noun"}, host.DrainPrintCalls())
}

func TestLoadInit(t *testing.T) {
	engine, host := setupTest(t)

	assert.NoError(t, engine.LoadInit(filepath.Join(t.TempDir(), "init.lua")))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helpers.lua"),
		[]byte(`return { greet = function() oefen.print("hallo") end }`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.lua"),
		[]byte(`local h = require("helpers")
h.greet()
oefen.capacity("adverbs", 4)`), 0644))

	require.NoError(t, engine.LoadInit(filepath.Join(dir, "init.lua")))
	assert.Equal(t, []string{"hallo"}, host.DrainPrintCalls())
	assert.Equal(t, 4, host.Capacities["adverbs"])

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.lua"), []byte(`oefen.capacity(`), 0644))
	assert.Error(t, engine.LoadInit(filepath.Join(dir, "broken.lua")))
}

func TestInitResetsHandlers(t *testing.T) {
	engine, host := setupTest(t)
	require.NoError(t, engine.DoString("init", `
		oefen.on("answer", function(r) oefen.print("answered") end)
		oefen.normalize(function(s) return "x" end)
	`))
	require.NoError(t, engine.Init())

	engine.OnAnswer(drill.Result{})
	assert.Empty(t, host.DrainPrintCalls())
	assert.Equal(t, "ja", engine.Normalize("ja"))
}

func TestClosedEngine(t *testing.T) {
	engine := NewEngine(NewMockHost())
	assert.Error(t, engine.DoString("x", "return"))

	require.NoError(t, engine.Init())
	engine.Close()
	assert.Error(t, engine.DoString("x", "return"))
	assert.Equal(t, "nee", engine.Normalize("nee"))
	engine.OnAnswer(drill.Result{})
}

func TestRegexCache(t *testing.T) {
	engine, _ := setupTest(t)
	require.NoError(t, engine.DoString("init", `
		oefen.regex.match("^(de|het) ", "de tafel")
		oefen.regex.match("^(de|het) ", "het huis")
	`))
	assert.Equal(t, 1, engine.regexCache.Len())
}
