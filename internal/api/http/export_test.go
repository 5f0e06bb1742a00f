package http

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/formhive/formhive/internal/quiz"
)

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)
	owner := register(t, env.handler, "alice")
	bob := register(t, env.handler, "bob")
	id := createAndPublish(t, env.handler, owner, capitalsQuiz(quiz.Settings{
		ShowResults: quiz.ShowAfterSubmit, PassingScore: 60,
	}), nil)

	if rec := doJSON(t, env.handler, "POST", "/quizzes/"+id+"/responses", bob, map[string]any{
		"answers": []map[string]any{
			{"questionId": "q1", "answer": "B"},
			{"questionId": "q2", "answer": "paris"},
		},
		"completionTime": 20,
	}); rec.Code != http.StatusCreated {
		t.Fatalf("bob submit: %d %s", rec.Code, rec.Body.String())
	}
	if rec := doJSON(t, env.handler, "POST", "/quizzes/"+id+"/responses", "", map[string]any{
		"answers": []map[string]any{{"questionId": "q1", "answer": "A"}},
	}); rec.Code != http.StatusCreated {
		t.Fatalf("anonymous submit: %d %s", rec.Code, rec.Body.String())
	}

	rec := doJSON(t, env.handler, "GET", "/quizzes/"+id+"/export?format=csv", owner, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("content disposition: %q", cd)
	}

	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	wantHeader := []string{"response_id", "user_id", "score", "total_points", "percentage",
		"passed", "completion_time", "submitted_at", "q1", "q2"}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if got := records[0]; len(got) != len(wantHeader) {
		t.Fatalf("header: %v", got)
	} else {
		for i := range wantHeader {
			if got[i] != wantHeader[i] {
				t.Fatalf("header col %d: got %q want %q", i, got[i], wantHeader[i])
			}
		}
	}

	var bobRow, anonRow []string
	for _, row := range records[1:] {
		switch {
		case row[8] == "B" && row[9] == "paris":
			bobRow = row
		case row[1] == "" && row[8] == "A":
			anonRow = row
		}
	}
	if bobRow == nil || anonRow == nil {
		t.Fatalf("rows not found: %v", records[1:])
	}
	if bobRow[2] != "3" || bobRow[4] != "100" || bobRow[5] != "true" || bobRow[6] != "20" {
		t.Fatalf("bob row: %v", bobRow)
	}
	if anonRow[2] != "0" || anonRow[5] != "false" || anonRow[9] != "" {
		t.Fatalf("anonymous row: %v", anonRow)
	}

	// Only the owner (or an admin) may export.
	if rec := doJSON(t, env.handler, "GET", "/quizzes/"+id+"/export?format=csv", bob, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner export: %d", rec.Code)
	}
}

func TestExportJSON(t *testing.T) {
	env := newTestEnv(t)
	owner := register(t, env.handler, "alice")
	id := createAndPublish(t, env.handler, owner, capitalsQuiz(quiz.Settings{
		ShowResults: quiz.ShowAfterSubmit, PassingScore: 60,
	}), nil)

	if rec := doJSON(t, env.handler, "POST", "/quizzes/"+id+"/responses", "", map[string]any{
		"answers": []map[string]any{{"questionId": "q1", "answer": "B"}},
	}); rec.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}

	rec := doJSON(t, env.handler, "GET", "/quizzes/"+id+"/export", owner, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("content disposition: %q", cd)
	}
	var list []quiz.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Score != 2 || len(list[0].Answers) != 1 {
		t.Fatalf("exported responses: %+v", list)
	}
}

func TestExportBadFormat(t *testing.T) {
	env := newTestEnv(t)
	owner := register(t, env.handler, "alice")
	id := createAndPublish(t, env.handler, owner, capitalsQuiz(quiz.Settings{
		ShowResults: quiz.ShowAfterSubmit, PassingScore: 60,
	}), nil)

	if rec := doJSON(t, env.handler, "GET", "/quizzes/"+id+"/export?format=xml", owner, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad format: %d", rec.Code)
	}
}

func TestExportPagesThroughAllResponses(t *testing.T) {
	env := newTestEnv(t)
	owner := register(t, env.handler, "alice")
	id := createAndPublish(t, env.handler, owner, capitalsQuiz(quiz.Settings{
		ShowResults: quiz.ShowAfterSubmit, PassingScore: 60,
	}), nil)

	// More responses than a single store page holds.
	const n = 501
	ctx := context.Background()
	for i := 0; i < n; i++ {
		r := quiz.Response{
			ID:          fmt.Sprintf("resp-%04d", i),
			QuizID:      id,
			Answers:     []quiz.GradedAnswer{},
			SubmittedAt: int64(i),
		}
		if err := env.store.PutResponse(ctx, r); err != nil {
			t.Fatalf("put response %d: %v", i, err)
		}
	}

	rec := doJSON(t, env.handler, "GET", "/quizzes/"+id+"/export?format=csv", owner, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: %d %s", rec.Code, rec.Body.String())
	}
	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != n+1 {
		t.Fatalf("expected header + %d rows, got %d", n, len(records))
	}
}
