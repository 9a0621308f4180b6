package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"thinking_styles_backend/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run 执行命令并返回标准输出
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// sternbergAnswers analytical 5 分，creative 2 分，practical 3 分
func sternbergAnswers(t *testing.T) []scoring.Response {
	t.Helper()
	questions, err := scoring.DefaultBank().Questions(scoring.Sternberg)
	require.NoError(t, err)
	score := map[scoring.Category]int{scoring.Analytical: 5, scoring.Creative: 2, scoring.Practical: 3}
	out := make([]scoring.Response, 0, len(questions))
	for _, q := range questions {
		out = append(out, scoring.Response{QuestionID: q.ID, Score: score[q.Category]})
	}
	return out
}

func TestQuestions(t *testing.T) {
	out, err := run(t, "", "questions")
	require.NoError(t, err)
	var sets []scoring.QuestionSet
	require.NoError(t, json.Unmarshal([]byte(out), &sets))
	require.Len(t, sets, 3)
	assert.Equal(t, scoring.Kolb, sets[0].Type)

	out, err = run(t, "", "questions", "dual_process", "--yaml")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &sets))
	require.Len(t, sets, 1)
	assert.Equal(t, scoring.DualProcess, sets[0].Type)

	_, err = run(t, "", "questions", "mbti")
	assert.ErrorIs(t, err, scoring.ErrUnknownAssessmentType)
}

func TestScore(t *testing.T) {
	data, err := json.Marshal(sternbergAnswers(t))
	require.NoError(t, err)

	out, err := run(t, string(data), "score", "--type", "sternberg")
	require.NoError(t, err)
	var scores scoring.CategoryScores
	require.NoError(t, json.Unmarshal([]byte(out), &scores))
	assert.Equal(t, scoring.CategoryScores{
		{Category: scoring.Analytical, Mean: 5},
		{Category: scoring.Creative, Mean: 2},
		{Category: scoring.Practical, Mean: 3},
	}, scores)
}

func TestScore_Strict(t *testing.T) {
	path := writeFile(t, "answers.yaml", "- {questionId: kolb_1, score: 4}\n- {questionId: kolb_99, score: 3}\n")

	_, err := run(t, "", "score", "-t", "kolb", "-f", path)
	require.NoError(t, err)

	_, err = run(t, "", "score", "-t", "kolb", "-f", path, "--strict")
	assert.ErrorIs(t, err, scoring.ErrUnknownQuestion)

	_, err = run(t, "", "score", "-f", path)
	assert.Error(t, err)
}

func TestProfile(t *testing.T) {
	input := map[string]interface{}{"sternberg": sternbergAnswers(t)}
	data, err := yaml.Marshal(input)
	require.NoError(t, err)
	path := writeFile(t, "answers.yaml", string(data))

	out, err := run(t, "", "profile", "--file", path)
	require.NoError(t, err)
	var result profileOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "analytical", result.Profile.PrimaryStyle)
	assert.Equal(t, "practical", result.Profile.SecondaryStyle)
	assert.Contains(t, result.EducationMapping.SHSTracks, "General Science")
	assert.Len(t, result.Scores[scoring.Sternberg], 3)
}

func TestProfile_Errors(t *testing.T) {
	_, err := run(t, "{}", "profile")
	assert.Error(t, err)

	_, err = run(t, `{"mbti": []}`, "profile")
	assert.ErrorIs(t, err, scoring.ErrUnknownAssessmentType)
}

func TestMap(t *testing.T) {
	out, err := run(t, "", "map", "--primary", "creative", "--yaml")
	require.NoError(t, err)
	var m scoring.EducationMapping
	require.NoError(t, yaml.Unmarshal([]byte(out), &m))
	assert.False(t, m.IsEmpty())

	out, err = run(t, "", "map", "--primary", "system_2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"shsTracks":[],"tertiaryPrograms":[],"careerSuggestions":[],"learningRecommendations":[]}`, out)
}

func TestCustomBank(t *testing.T) {
	bank := writeFile(t, "bank.yaml", `
assessments:
  - type: grit
    title: Grit Scale
    categories: [perseverance]
    questions:
      - {id: grit_1, text: I finish whatever I begin., category: perseverance}
`)

	out, err := run(t, `[{"questionId": "grit_1", "score": 4}]`, "score", "--bank", bank, "--type", "grit")
	require.NoError(t, err)
	assert.Contains(t, out, `"perseverance"`)

	_, err = run(t, "", "questions", "--bank", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("thinkctl version %s\n", version), out)
}
