package quiz

// Kind selects the comparison semantics for a question.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
	KindFillBlank      Kind = "fill_blank"
	KindEssay          Kind = "essay"
)

// Quiz lifecycle states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Access modes for a published quiz.
const (
	AccessPublic = "public"
	AccessCode   = "code"
)

// Result visibility modes.
const (
	ShowImmediately = "immediately"
	ShowAfterSubmit = "after_submit"
	ShowManual      = "manual"
)

// Option is one selectable choice for multiple_choice and true_false questions.
// Correct is an authoring convenience: the write path folds it into the
// AnswerKey, and PublicView must always strip it.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct,omitempty"`
}

// AnswerKey is the machine-checkable answer for a question. Exactly one field
// is populated, determined by the question kind. Essay questions carry no key
// at all (nil pointer on the Question).
type AnswerKey struct {
	OptionID string `json:"option_id,omitempty"` // multiple_choice: correct option ID
	Literal  string `json:"literal,omitempty"`   // true_false: "True" or "False"
	Text     string `json:"text,omitempty"`      // fill_blank: expected text
}

// Question is the authoritative record, including its answer key. It must
// never be sent to a non-owner without going through PublicView.
type Question struct {
	ID               string     `json:"id"`
	Kind             Kind       `json:"kind"`
	Prompt           string     `json:"prompt"`
	Options          []Option   `json:"options,omitempty"`
	Key              *AnswerKey `json:"answer_key,omitempty"`
	Points           int        `json:"points"`
	Explanation      string     `json:"explanation,omitempty"`
	ExplanationLatex string     `json:"explanation_latex,omitempty"`
}

// CorrectAnswer returns the key in the wire form used for disclosure
// ("correctAnswer" in detailed results). Empty for essay questions.
func (q Question) CorrectAnswer() string {
	if q.Key == nil {
		return ""
	}
	switch q.Kind {
	case KindMultipleChoice:
		return q.Key.OptionID
	case KindTrueFalse:
		return q.Key.Literal
	case KindFillBlank:
		return q.Key.Text
	}
	return ""
}

// Settings control scoring thresholds and what a submitter is shown.
// Consumed read-only by grading and result assembly.
type Settings struct {
	ShowResults        string `json:"show_results"`
	ShowCorrectAnswers bool   `json:"show_correct_answers"`
	ShowExplanations   bool   `json:"show_explanations"`
	PassingScore       int    `json:"passing_score"`
	AllowRetake        bool   `json:"allow_retake"`
}

// Quiz is a named collection of questions plus scoring/visibility settings.
type Quiz struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	Access        string     `json:"access"`
	AccessCode    string     `json:"access_code,omitempty"`
	Settings      Settings   `json:"settings"`
	Questions     []Question `json:"questions"`
	TotalPoints   int        `json:"total_points"`
	ResponseCount int        `json:"response_count"`
	CreatedAt     int64      `json:"created_at,omitempty"`
	UpdatedAt     int64      `json:"updated_at,omitempty"`
}

// SubmittedAnswer is one raw answer from a respondent. QuestionID values that
// match no question in the quiz are ignored by the grader.
type SubmittedAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	TimeSpent  int    `json:"timeSpent,omitempty"`
}

// GradedAnswer is the per-question outcome of comparing a submission against
// the authoritative key. Created fresh on every submission; never trusted from
// the client.
type GradedAnswer struct {
	QuestionID   string `json:"questionId"`
	UserAnswer   string `json:"userAnswer"`
	IsCorrect    bool   `json:"isCorrect"`
	PointsEarned int    `json:"pointsEarned"`
}

// Response is the permanent record of one submission.
type Response struct {
	ID             string         `json:"id"`
	QuizID         string         `json:"quiz_id"`
	UserID         string         `json:"user_id,omitempty"` // empty for anonymous respondents
	Score          int            `json:"score"`
	TotalPoints    int            `json:"total_points"`
	Percentage     int            `json:"percentage"`
	Passed         bool           `json:"passed"`
	CompletionTime int            `json:"completion_time"`
	Answers        []GradedAnswer `json:"answers"`
	SubmittedAt    int64          `json:"submitted_at"`
}

// QuizSummary is the list-view projection: no questions, no keys.
type QuizSummary struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status"`
	Access        string `json:"access"`
	QuestionCount int    `json:"question_count"`
	TotalPoints   int    `json:"total_points"`
	ResponseCount int    `json:"response_count"`
	CreatedAt     int64  `json:"created_at"`
}
