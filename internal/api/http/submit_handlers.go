package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/formhive/formhive/internal/audit"
	"github.com/formhive/formhive/internal/auth"
	"github.com/formhive/formhive/internal/grading"
	"github.com/formhive/formhive/internal/quiz"
	"github.com/formhive/formhive/internal/results"
)

type submitReq struct {
	Answers        []quiz.SubmittedAnswer `json:"answers"`
	CompletionTime int                    `json:"completionTime"`
}

type submitResp struct {
	ResponseID      string                   `json:"responseId"`
	Message         string                   `json:"message"`
	Results         *results.Summary         `json:"results,omitempty"`
	DetailedResults []results.BreakdownEntry `json:"detailedResults,omitempty"`
}

// POST /quizzes/{quizID}/responses?code=...
// Grades against the authoritative quiz (never the redacted view), assembles
// the policy-gated result and persists the permanent record.
func SubmitResponseHandler(store quiz.Store, ev *grading.Evaluator, events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		var req submitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		qz, err := store.GetQuiz(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		userID := auth.SubjectFromContext(r.Context())
		owner := canManage(r, qz)
		if qz.Status != quiz.StatusPublished {
			http.Error(w, quiz.ErrNotPublished.Error(), errStatus(quiz.ErrNotPublished))
			return
		}
		if !owner && qz.Access == quiz.AccessCode && r.URL.Query().Get("code") != qz.AccessCode {
			http.Error(w, quiz.ErrBadAccessCode.Error(), http.StatusForbidden)
			return
		}
		// One attempt per identified user unless retakes are allowed.
		if !qz.Settings.AllowRetake && userID != "" {
			taken, err := store.HasResponse(r.Context(), qz.ID, userID)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			if taken {
				http.Error(w, quiz.ErrAlreadyResponded.Error(), http.StatusConflict)
				return
			}
		}

		graded := ev.GradeSubmission(qz, req.Answers)
		summary, breakdown := results.Assemble(qz, graded, req.CompletionTime)

		resp := quiz.Response{
			ID:             uuid.NewString(),
			QuizID:         qz.ID,
			UserID:         userID,
			Score:          summary.Score,
			TotalPoints:    summary.TotalPoints,
			Percentage:     summary.Percentage,
			Passed:         summary.Passed,
			CompletionTime: req.CompletionTime,
			Answers:        graded,
			SubmittedAt:    time.Now().Unix(),
		}
		if err := store.PutResponse(r.Context(), resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		auditAppend(r, events, audit.TypeResponseSubmitted, resp.ID, userID,
			map[string]any{"quiz_id": qz.ID, "score": summary.Score})

		// The summary is never policy-gated; only the breakdown is (nil for
		// show_results=manual).
		out := submitResp{
			ResponseID:      resp.ID,
			Message:         "response recorded",
			Results:         &summary,
			DetailedResults: breakdown,
		}
		respondJSON(w, http.StatusCreated, out)
	}
}
