package quiz

import "fmt"

// Normalize prepares an authored quiz for persistence: defaults, key folding
// and per-kind key validation. It is invoked explicitly by the write path,
// never as a save-time side effect.
func Normalize(qz *Quiz) error {
	if qz.Status == "" {
		qz.Status = StatusDraft
	}
	if qz.Access == "" {
		qz.Access = AccessPublic
	}
	if qz.Settings.ShowResults == "" {
		qz.Settings.ShowResults = ShowAfterSubmit
	}
	switch qz.Settings.ShowResults {
	case ShowImmediately, ShowAfterSubmit, ShowManual:
	default:
		return fmt.Errorf("invalid show_results %q", qz.Settings.ShowResults)
	}
	if qz.Settings.PassingScore < 0 || qz.Settings.PassingScore > 100 {
		return fmt.Errorf("passing_score out of range: %d", qz.Settings.PassingScore)
	}
	seen := make(map[string]struct{}, len(qz.Questions))
	for i := range qz.Questions {
		q := &qz.Questions[i]
		if q.ID == "" {
			return fmt.Errorf("question %d: id required", i)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
		if q.Points <= 0 {
			q.Points = 1
		}
		if err := normalizeKey(q); err != nil {
			return fmt.Errorf("question %q: %w", q.ID, err)
		}
	}
	RecomputeTotalPoints(qz)
	return nil
}

// normalizeKey folds an author-marked correct option into the AnswerKey and
// checks the exactly-one-representation-per-kind invariant.
func normalizeKey(q *Question) error {
	switch q.Kind {
	case KindMultipleChoice:
		if len(q.Options) == 0 {
			return fmt.Errorf("multiple_choice requires options")
		}
		if q.Key == nil || q.Key.OptionID == "" {
			for _, o := range q.Options {
				if o.Correct {
					q.Key = &AnswerKey{OptionID: o.ID}
					break
				}
			}
		}
		if q.Key == nil || q.Key.OptionID == "" {
			return fmt.Errorf("multiple_choice requires a correct option")
		}
		if q.Key.Literal != "" || q.Key.Text != "" {
			return fmt.Errorf("multiple_choice key must set option_id only")
		}
		if !hasOption(q.Options, q.Key.OptionID) {
			return fmt.Errorf("correct option %q not among options", q.Key.OptionID)
		}
	case KindTrueFalse:
		if q.Key == nil || q.Key.Literal == "" {
			return fmt.Errorf("true_false requires a literal key")
		}
		if q.Key.Literal != "True" && q.Key.Literal != "False" {
			return fmt.Errorf("true_false key must be \"True\" or \"False\", got %q", q.Key.Literal)
		}
		if q.Key.OptionID != "" || q.Key.Text != "" {
			return fmt.Errorf("true_false key must set literal only")
		}
		if len(q.Options) == 0 {
			q.Options = []Option{{ID: "True", Text: "True"}, {ID: "False", Text: "False"}}
		}
	case KindFillBlank:
		if q.Key == nil || q.Key.Text == "" {
			return fmt.Errorf("fill_blank requires a text key")
		}
		if q.Key.OptionID != "" || q.Key.Literal != "" {
			return fmt.Errorf("fill_blank key must set text only")
		}
		q.Options = nil
	case KindEssay:
		// Graded manually; never carries a machine-checkable key.
		q.Key = nil
		q.Options = nil
	default:
		return fmt.Errorf("unknown kind %q", q.Kind)
	}
	return nil
}

// RecomputeTotalPoints sets TotalPoints from the current question weights.
// Fixed at quiz-definition time; results snapshot it per submission.
func RecomputeTotalPoints(qz *Quiz) {
	total := 0
	for _, q := range qz.Questions {
		total += q.Points
	}
	qz.TotalPoints = total
}

func hasOption(opts []Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}
