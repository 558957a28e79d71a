package quiz

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleQuiz() *Quiz {
	return &Quiz{
		Title: "Derivatives",
		Questions: []Question{
			{
				ID:                 1,
				Text:               "What is $\\frac{d}{dx} x^2$?",
				Options:            []string{"$x$", "$2x$", "$x^2$", "$2$"},
				CorrectAnswerIndex: 1,
				Explanation:        "Power rule: bring the exponent down.",
			},
			{
				ID:                 2,
				Text:               "What is $\\frac{d}{dx} \\sin x$?",
				Options:            []string{"$\\cos x$", "$-\\cos x$", "$\\sin x$", "$-\\sin x$"},
				CorrectAnswerIndex: 0,
				Explanation:        "The derivative of sine is cosine.",
			},
		},
	}
}

const sampleJSON = `{
  "title": "Derivatives",
  "version": "1.2",
  "questions": [
    {"id": 1, "text": "d/dx x^2", "options": ["x", "2x", "x^2", "2"], "correctAnswerIndex": 1, "explanation": "Power rule."}
  ]
}`

func TestGrade(t *testing.T) {
	q := sampleQuiz()

	res := Grade(q, Answers{1: 1, 2: 3})
	if res.Score != 1 || res.Total != 2 {
		t.Fatalf("got %d/%d, want 1/2", res.Score, res.Total)
	}
	if res.Credits() != CreditsPerCorrect {
		t.Errorf("credits = %d, want %d", res.Credits(), CreditsPerCorrect)
	}

	res = Grade(q, Answers{1: 1, 2: 0})
	if res.Score != 2 {
		t.Errorf("all correct: score = %d, want 2", res.Score)
	}
}

func TestGrade_UnansweredCountsWrong(t *testing.T) {
	res := Grade(sampleQuiz(), Answers{2: 0})
	if res.Score != 1 {
		t.Fatalf("score = %d, want 1", res.Score)
	}
}

func TestGrade_CopiesAnswers(t *testing.T) {
	a := Answers{1: 1}
	res := Grade(sampleQuiz(), a)
	a[1] = 3
	if res.Answers[1] != 1 {
		t.Error("result shares the caller's answer map")
	}
}

func TestAllAnswered(t *testing.T) {
	q := sampleQuiz()
	if q.AllAnswered(Answers{1: 0}) {
		t.Error("expected false with one question unanswered")
	}
	if !q.AllAnswered(Answers{1: 0, 2: 2}) {
		t.Error("expected true with every question answered")
	}
}

func TestQuestionLookup(t *testing.T) {
	q := sampleQuiz()
	if got, ok := q.Question(2); !ok || got.CorrectAnswerIndex != 0 {
		t.Fatalf("Question(2) = %+v, %v", got, ok)
	}
	if _, ok := q.Question(9); ok {
		t.Error("Question(9) should not exist")
	}
}

func TestStructural_Valid(t *testing.T) {
	if err := (&StructuralValidator{}).Validate(sampleQuiz()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Quiz)
		want   string
	}{
		{"empty title", func(q *Quiz) { q.Title = " " }, "title"},
		{"no questions", func(q *Quiz) { q.Questions = nil }, "no questions"},
		{"duplicate id", func(q *Quiz) { q.Questions[1].ID = 1 }, "duplicate id"},
		{"empty text", func(q *Quiz) { q.Questions[0].Text = "" }, "text is empty"},
		{"empty explanation", func(q *Quiz) { q.Questions[0].Explanation = "" }, "explanation"},
		{"three options", func(q *Quiz) { q.Questions[0].Options = q.Questions[0].Options[:3] }, "has 3 options"},
		{"blank option", func(q *Quiz) { q.Questions[0].Options[2] = "" }, "option 2 is empty"},
		{"repeated option", func(q *Quiz) { q.Questions[0].Options[3] = "$x$" }, "appears twice"},
		{"index too high", func(q *Quiz) { q.Questions[0].CorrectAnswerIndex = 4 }, "out of range"},
		{"negative index", func(q *Quiz) { q.Questions[0].CorrectAnswerIndex = -1 }, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := sampleQuiz()
			tt.mutate(q)
			err := (&StructuralValidator{}).Validate(q)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Validator != "structural" || !err.Retryable {
				t.Errorf("unexpected error shape: %+v", err)
			}
			if !strings.Contains(err.Message, tt.want) {
				t.Errorf("message %q does not mention %q", err.Message, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	q, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if q.Title != "Derivatives" || len(q.Questions) != 1 {
		t.Fatalf("unexpected quiz: %+v", q)
	}
	if q.Version != "v1.2.0" {
		t.Errorf("version = %q, want v1.2.0", q.Version)
	}
	if q.Questions[0].CorrectAnswerIndex != 1 {
		t.Errorf("correct index = %d", q.Questions[0].CorrectAnswerIndex)
	}
}

func TestParse_MissingVersionIsCurrent(t *testing.T) {
	q, err := Parse([]byte(`{"title":"T","questions":[{"id":1,"text":"q","options":["a","b","c","d"],"correctAnswerIndex":0,"explanation":"e"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if q.Version != CurrentVersion {
		t.Errorf("version = %q, want %q", q.Version, CurrentVersion)
	}
}

func TestParse_RejectsOtherMajor(t *testing.T) {
	data := strings.Replace(sampleJSON, `"1.2"`, `"2.0.0"`, 1)
	_, err := Parse([]byte(data))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}

	data = strings.Replace(sampleJSON, `"1.2"`, `"latest"`, 1)
	if _, err := Parse([]byte(data)); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion for non-semver, got %v", err)
	}
}

func TestParse_SchemaViolations(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"title":`,
		"missing title":   `{"questions":[]}`,
		"five options":    `{"title":"T","questions":[{"id":1,"text":"q","options":["a","b","c","d","e"],"correctAnswerIndex":0,"explanation":"e"}]}`,
		"index out range": `{"title":"T","questions":[{"id":1,"text":"q","options":["a","b","c","d"],"correctAnswerIndex":4,"explanation":"e"}]}`,
		"string id":       `{"title":"T","questions":[{"id":"one","text":"q","options":["a","b","c","d"],"correctAnswerIndex":0,"explanation":"e"}]}`,
		"empty questions": `{"title":"T","questions":[]}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParse_RunsValidators(t *testing.T) {
	data := `{"title":"T","questions":[{"id":1,"text":"q","options":["a","a","c","d"],"correctAnswerIndex":0,"explanation":"e"}]}`
	_, err := Parse([]byte(data))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestMarshalLoadRoundTrip(t *testing.T) {
	data, err := Marshal(sampleQuiz())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"correctAnswerIndex": 1`) {
		t.Errorf("expected camelCase keys, got:\n%s", data)
	}

	path := filepath.Join(t.TempDir(), "quiz.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	q, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if q.Version != CurrentVersion || len(q.Questions) != 2 {
		t.Errorf("unexpected quiz after load: %+v", q)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error")
	}
}
