package grading

import (
	"fmt"

	"github.com/formhive/formhive/internal/quiz"
)

// strategy decides correctness for one question kind. Strategies never award
// partial credit and never error: a malformed or empty answer is simply wrong.
type strategy interface {
	correct(q quiz.Question, answer string) bool
}

// Evaluator routes by question kind to the matching strategy. It is pure and
// stateless; every call grades against the authoritative question record,
// never a client-declared result.
type Evaluator struct {
	strategies map[quiz.Kind]strategy
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		strategies: map[quiz.Kind]strategy{
			quiz.KindMultipleChoice: optionStrategy{},
			quiz.KindTrueFalse:      literalStrategy{},
			quiz.KindFillBlank:      fillBlankStrategy{},
			quiz.KindEssay:          essayStrategy{},
		},
	}
}

// Grade classifies one submitted answer against its question. The caller
// pairs answer to question; sub.QuestionID is trusted to equal q.ID.
// A question with an unknown kind means corrupted authoritative data and
// panics rather than grading silently.
func (e *Evaluator) Grade(q quiz.Question, sub quiz.SubmittedAnswer) quiz.GradedAnswer {
	s, ok := e.strategies[q.Kind]
	if !ok {
		panic(fmt.Sprintf("grading: question %q has unknown kind %q", q.ID, q.Kind))
	}
	ga := quiz.GradedAnswer{QuestionID: q.ID, UserAnswer: sub.Answer}
	if s.correct(q, sub.Answer) {
		ga.IsCorrect = true
		ga.PointsEarned = q.Points
	}
	return ga
}

// GradeSubmission pairs submitted answers with the quiz's questions by ID and
// grades each match. Answers referencing unknown questions are dropped, not
// errors; unanswered questions simply earn nothing.
func (e *Evaluator) GradeSubmission(qz quiz.Quiz, answers []quiz.SubmittedAnswer) []quiz.GradedAnswer {
	byID := make(map[string]quiz.Question, len(qz.Questions))
	for _, q := range qz.Questions {
		byID[q.ID] = q
	}
	graded := make([]quiz.GradedAnswer, 0, len(answers))
	for _, sub := range answers {
		q, ok := byID[sub.QuestionID]
		if !ok {
			continue
		}
		graded = append(graded, e.Grade(q, sub))
	}
	return graded
}

// optionStrategy: exact, case-sensitive equality with the correct option ID.
type optionStrategy struct{}

func (optionStrategy) correct(q quiz.Question, answer string) bool {
	return q.Key != nil && answer != "" && answer == q.Key.OptionID
}

// literalStrategy: exact equality with the "True"/"False" literal.
type literalStrategy struct{}

func (literalStrategy) correct(q quiz.Question, answer string) bool {
	return q.Key != nil && answer != "" && answer == q.Key.Literal
}

// fillBlankStrategy: case-insensitive, leading/trailing-whitespace-insensitive
// match. Deliberately nothing richer: no punctuation stripping, no numeric
// parsing, no fuzzy distance.
type fillBlankStrategy struct{}

func (fillBlankStrategy) correct(q quiz.Question, answer string) bool {
	if q.Key == nil {
		return false
	}
	norm := normalizeBlank(answer)
	return norm != "" && norm == normalizeBlank(q.Key.Text)
}

// essayStrategy: never auto-correct; stays at zero points until a manual
// override path exists.
type essayStrategy struct{}

func (essayStrategy) correct(quiz.Question, string) bool { return false }
