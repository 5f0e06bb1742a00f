package quiz

import (
	"strings"
	"testing"
)

func TestNormalizeDefaultsAndTotals(t *testing.T) {
	qz := Quiz{
		ID: "quiz-1",
		Questions: []Question{
			{ID: "q1", Kind: KindMultipleChoice,
				Options: []Option{{ID: "A"}, {ID: "B", Correct: true}}},
			{ID: "q2", Kind: KindFillBlank, Key: &AnswerKey{Text: "Paris"}, Points: 3},
		},
	}
	if err := Normalize(&qz); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if qz.Status != StatusDraft || qz.Access != AccessPublic {
		t.Fatalf("defaults not applied: status=%q access=%q", qz.Status, qz.Access)
	}
	if qz.Settings.ShowResults != ShowAfterSubmit {
		t.Fatalf("show_results default: %q", qz.Settings.ShowResults)
	}
	if qz.Questions[0].Points != 1 {
		t.Fatalf("points default: %d", qz.Questions[0].Points)
	}
	if qz.TotalPoints != 4 {
		t.Fatalf("total points: %d", qz.TotalPoints)
	}
}

func TestNormalizeFoldsCorrectOptionIntoKey(t *testing.T) {
	qz := Quiz{
		Questions: []Question{
			{ID: "q1", Kind: KindMultipleChoice,
				Options: []Option{{ID: "A"}, {ID: "B", Correct: true}}},
		},
	}
	if err := Normalize(&qz); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	q := qz.Questions[0]
	if q.Key == nil || q.Key.OptionID != "B" {
		t.Fatalf("correct flag not folded into key: %+v", q.Key)
	}
}

func TestNormalizeTrueFalseOptions(t *testing.T) {
	qz := Quiz{
		Questions: []Question{
			{ID: "q1", Kind: KindTrueFalse, Key: &AnswerKey{Literal: "False"}},
		},
	}
	if err := Normalize(&qz); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	opts := qz.Questions[0].Options
	if len(opts) != 2 || opts[0].ID != "True" || opts[1].ID != "False" {
		t.Fatalf("true/false options not synthesized: %+v", opts)
	}
}

func TestNormalizeEssayClearsKey(t *testing.T) {
	qz := Quiz{
		Questions: []Question{
			{ID: "q1", Kind: KindEssay, Key: &AnswerKey{Text: "anything"},
				Options: []Option{{ID: "A"}}},
		},
	}
	if err := Normalize(&qz); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if qz.Questions[0].Key != nil || qz.Questions[0].Options != nil {
		t.Fatalf("essay must carry no key or options: %+v", qz.Questions[0])
	}
}

func TestNormalizeRejections(t *testing.T) {
	cases := []struct {
		name string
		qz   Quiz
		want string
	}{
		{"duplicate id", Quiz{Questions: []Question{
			{ID: "q1", Kind: KindFillBlank, Key: &AnswerKey{Text: "a"}},
			{ID: "q1", Kind: KindFillBlank, Key: &AnswerKey{Text: "b"}},
		}}, "duplicate question id"},
		{"missing id", Quiz{Questions: []Question{
			{Kind: KindFillBlank, Key: &AnswerKey{Text: "a"}},
		}}, "id required"},
		{"mcq without correct", Quiz{Questions: []Question{
			{ID: "q1", Kind: KindMultipleChoice, Options: []Option{{ID: "A"}}},
		}}, "correct option"},
		{"mcq key not among options", Quiz{Questions: []Question{
			{ID: "q1", Kind: KindMultipleChoice,
				Options: []Option{{ID: "A"}},
				Key:     &AnswerKey{OptionID: "Z"}},
		}}, "not among options"},
		{"true_false bad literal", Quiz{Questions: []Question{
			{ID: "q1", Kind: KindTrueFalse, Key: &AnswerKey{Literal: "true"}},
		}}, "must be"},
		{"fill_blank missing text", Quiz{Questions: []Question{
			{ID: "q1", Kind: KindFillBlank},
		}}, "requires a text key"},
		{"key with two representations", Quiz{Questions: []Question{
			{ID: "q1", Kind: KindFillBlank, Key: &AnswerKey{Text: "a", Literal: "True"}},
		}}, "text only"},
		{"unknown kind", Quiz{Questions: []Question{
			{ID: "q1", Kind: "matrix"},
		}}, "unknown kind"},
		{"passing score out of range", Quiz{
			Settings: Settings{PassingScore: 101},
		}, "passing_score"},
		{"invalid show_results", Quiz{
			Settings: Settings{ShowResults: "never"},
		}, "show_results"},
	}
	for _, tc := range cases {
		err := Normalize(&tc.qz)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestRecomputeTotalPoints(t *testing.T) {
	qz := Quiz{
		TotalPoints: 99,
		Questions: []Question{
			{ID: "q1", Points: 2},
			{ID: "q2", Points: 1},
			{ID: "q3", Points: 5},
		},
	}
	RecomputeTotalPoints(&qz)
	if qz.TotalPoints != 8 {
		t.Fatalf("total points: got %d, want 8", qz.TotalPoints)
	}

	qz.Questions = nil
	RecomputeTotalPoints(&qz)
	if qz.TotalPoints != 0 {
		t.Fatalf("empty quiz total: got %d, want 0", qz.TotalPoints)
	}
}
