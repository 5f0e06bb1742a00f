package quiz

import "context"

// ListOpts filters quiz listings. Viewer scoping: non-admin viewers see their
// own quizzes plus published public ones.
type ListOpts struct {
	Q          string
	Limit      int
	Offset     int
	ViewerID   string
	ViewerRole string // "user" | "admin"
}

// ResponseListOpts filters response listings for a quiz.
type ResponseListOpts struct {
	UserID string
	Limit  int
	Offset int
}

// Store persists quizzes and submission records. GetQuiz returns the full
// authoritative quiz including answer keys; callers are responsible for
// projecting through PublicView before serving non-owners.
type Store interface {
	PutQuiz(ctx context.Context, qz Quiz) error
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	GetQuizByCode(ctx context.Context, code string) (Quiz, error)
	ListQuizzes(ctx context.Context, opts ListOpts) ([]QuizSummary, error)
	SetStatus(ctx context.Context, id, status string) error
	DeleteQuiz(ctx context.Context, id string) error

	PutResponse(ctx context.Context, r Response) error
	GetResponse(ctx context.Context, id string) (Response, error)
	ListResponses(ctx context.Context, quizID string, opts ResponseListOpts) ([]Response, error)
	HasResponse(ctx context.Context, quizID, userID string) (bool, error)
}
