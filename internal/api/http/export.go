package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/formhive/formhive/internal/quiz"
)

// GET /quizzes/{quizID}/export?format=csv|json
// Owner/admin download of all responses. CSV flattens one row per response
// with a column per question holding the raw submitted answer.
func ExportResponsesHandler(store quiz.Store) http.HandlerFunc {
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
		// The export is complete: page through the store until exhaustion.
		const page = 500
		list := []quiz.Response{}
		for offset := 0; ; offset += page {
			batch, err := store.ListResponses(r.Context(), id, quiz.ResponseListOpts{Limit: page, Offset: offset})
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			list = append(list, batch...)
			if len(batch) < page {
				break
			}
		}

		format := r.URL.Query().Get("format")
		if format == "" || format == "json" {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Content-Disposition",
				fmt.Sprintf("attachment; filename=%q", "responses_"+qz.ID+".json"))
			respondJSON(w, http.StatusOK, list)
			return
		}
		if format != "csv" {
			http.Error(w, "format must be csv or json", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "responses_"+qz.ID+".csv"))
		cw := csv.NewWriter(w)
		header := []string{"response_id", "user_id", "score", "total_points", "percentage", "passed", "completion_time", "submitted_at"}
		for _, q := range qz.Questions {
			header = append(header, q.ID)
		}
		_ = cw.Write(header)
		for _, resp := range list {
			byQ := make(map[string]quiz.GradedAnswer, len(resp.Answers))
			for _, a := range resp.Answers {
				byQ[a.QuestionID] = a
			}
			row := []string{
				resp.ID,
				resp.UserID,
				strconv.Itoa(resp.Score),
				strconv.Itoa(resp.TotalPoints),
				strconv.Itoa(resp.Percentage),
				strconv.FormatBool(resp.Passed),
				strconv.Itoa(resp.CompletionTime),
				time.Unix(resp.SubmittedAt, 0).UTC().Format(time.RFC3339),
			}
			for _, q := range qz.Questions {
				row = append(row, byQ[q.ID].UserAnswer)
			}
			_ = cw.Write(row)
		}
		cw.Flush()
	}
}
