package results

import (
	"math"

	"github.com/formhive/formhive/internal/quiz"
)

// Summary is the always-returned aggregate outcome of a submission. It must
// never carry answer-key material; disclosure happens only in the breakdown.
type Summary struct {
	Score          int  `json:"score"`
	TotalPoints    int  `json:"totalPoints"`
	Percentage     int  `json:"percentage"`
	Passed         bool `json:"passed"`
	CompletionTime int  `json:"completionTime"`
}

// BreakdownEntry is the per-question disclosure, policy-gated field by field.
type BreakdownEntry struct {
	QuestionID       string `json:"questionId"`
	UserAnswer       string `json:"userAnswer"`
	IsCorrect        bool   `json:"isCorrect"`
	PointsEarned     int    `json:"pointsEarned"`
	CorrectAnswer    string `json:"correctAnswer,omitempty"`
	Explanation      string `json:"explanation,omitempty"`
	ExplanationLatex string `json:"explanationLatex,omitempty"`
}

// Assemble aggregates graded answers into a Summary and, when the quiz's
// visibility policy allows, a detailed breakdown. The breakdown is nil for
// show_results=manual; releasing it later is a separate concern.
func Assemble(qz quiz.Quiz, graded []quiz.GradedAnswer, completionTime int) (Summary, []BreakdownEntry) {
	sum := Summarize(qz, graded, completionTime)
	if qz.Settings.ShowResults == quiz.ShowManual {
		return sum, nil
	}
	return sum, Breakdown(qz, graded)
}

// Summarize computes the score aggregate alone. TotalPoints comes from the
// quiz definition, not from the answered subset, so unanswered questions count
// against the percentage.
func Summarize(qz quiz.Quiz, graded []quiz.GradedAnswer, completionTime int) Summary {
	score := 0
	for _, g := range graded {
		score += g.PointsEarned
	}
	sum := Summary{
		Score:          score,
		TotalPoints:    qz.TotalPoints,
		CompletionTime: completionTime,
	}
	if qz.TotalPoints > 0 {
		sum.Percentage = int(math.Round(float64(score) / float64(qz.TotalPoints) * 100))
	}
	sum.Passed = sum.Percentage >= qz.Settings.PassingScore
	return sum
}

// Breakdown renders per-question entries with disclosure limited by the
// quiz's settings. Entries for answers whose question has since vanished are
// kept with their graded fields only.
func Breakdown(qz quiz.Quiz, graded []quiz.GradedAnswer) []BreakdownEntry {
	byID := make(map[string]quiz.Question, len(qz.Questions))
	for _, q := range qz.Questions {
		byID[q.ID] = q
	}
	entries := make([]BreakdownEntry, 0, len(graded))
	for _, g := range graded {
		e := BreakdownEntry{
			QuestionID:   g.QuestionID,
			UserAnswer:   g.UserAnswer,
			IsCorrect:    g.IsCorrect,
			PointsEarned: g.PointsEarned,
		}
		if q, ok := byID[g.QuestionID]; ok {
			if qz.Settings.ShowCorrectAnswers {
				e.CorrectAnswer = q.CorrectAnswer()
			}
			if qz.Settings.ShowExplanations && q.Explanation != "" {
				e.Explanation = q.Explanation
				e.ExplanationLatex = q.ExplanationLatex
			}
		}
		entries = append(entries, e)
	}
	return entries
}
