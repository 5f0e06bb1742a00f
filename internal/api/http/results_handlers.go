package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/formhive/formhive/internal/auth"
	"github.com/formhive/formhive/internal/quiz"
	"github.com/formhive/formhive/internal/results"
)

// GET /quizzes/{quizID}/responses?user_id=...&limit=100&offset=0
// Owner/admin only: the raw records including graded answers.
func ListResponsesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		qz, err := store.GetQuiz(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		if !canManage(r, qz) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		list, err := store.ListResponses(r.Context(), id, quiz.ResponseListOpts{
			UserID: r.URL.Query().Get("user_id"),
			Limit:  parseIntDefault(r.URL.Query().Get("limit"), 100),
			Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

type responseView struct {
	ResponseID      string                   `json:"responseId"`
	QuizID          string                   `json:"quizId"`
	SubmittedAt     int64                    `json:"submittedAt"`
	Results         results.Summary          `json:"results"`
	DetailedResults []results.BreakdownEntry `json:"detailedResults,omitempty"`
}

// GET /responses/{responseID}
// Quiz owners and admins see the full breakdown; the respondent sees what the
// quiz's visibility policy allows.
func GetResponseHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "responseID")
		resp, err := store.GetResponse(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		qz, err := store.GetQuiz(r.Context(), resp.QuizID)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		sub := auth.SubjectFromContext(r.Context())
		manager := canManage(r, qz)
		if !manager && (sub == "" || sub != resp.UserID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		summary := results.Summary{
			Score:          resp.Score,
			TotalPoints:    resp.TotalPoints,
			Percentage:     resp.Percentage,
			Passed:         resp.Passed,
			CompletionTime: resp.CompletionTime,
		}
		view := responseView{
			ResponseID:  resp.ID,
			QuizID:      resp.QuizID,
			SubmittedAt: resp.SubmittedAt,
			Results:     summary,
		}
		if manager {
			// Owner view: full disclosure, policy does not apply.
			full := qz
			full.Settings.ShowResults = quiz.ShowImmediately
			full.Settings.ShowCorrectAnswers = true
			full.Settings.ShowExplanations = true
			view.DetailedResults = results.Breakdown(full, resp.Answers)
		} else if qz.Settings.ShowResults != quiz.ShowManual {
			view.DetailedResults = results.Breakdown(qz, resp.Answers)
		}
		respondJSON(w, http.StatusOK, view)
	}
}
