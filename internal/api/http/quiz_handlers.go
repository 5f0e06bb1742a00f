package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/formhive/formhive/internal/audit"
	"github.com/formhive/formhive/internal/auth"
	"github.com/formhive/formhive/internal/quiz"
	"github.com/formhive/formhive/internal/rbac"
)

// POST /quizzes
func CreateQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var qz quiz.Quiz
		if err := json.NewDecoder(r.Body).Decode(&qz); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(qz.Title) == "" {
			http.Error(w, "title required", http.StatusBadRequest)
			return
		}
		if qz.ID == "" {
			qz.ID = uuid.NewString()
		}
		qz.OwnerID = auth.SubjectFromContext(r.Context())
		qz.Status = quiz.StatusDraft
		if err := quiz.Normalize(&qz); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.PutQuiz(r.Context(), qz); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{"status": "ok", "id": qz.ID})
	}
}

// PUT /quizzes/{quizID}
func UpdateQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		existing, err := store.GetQuiz(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		if !canManage(r, existing) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		var qz quiz.Quiz
		if err := json.NewDecoder(r.Body).Decode(&qz); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		// Identity and counters are not writable through this endpoint.
		qz.ID = existing.ID
		qz.OwnerID = existing.OwnerID
		qz.Status = existing.Status
		qz.ResponseCount = existing.ResponseCount
		qz.CreatedAt = existing.CreatedAt
		if err := quiz.Normalize(&qz); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.PutQuiz(r.Context(), qz); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "id": qz.ID})
	}
}

// GET /quizzes/{quizID}?code=...
// Owners and admins get the authoritative quiz; everyone else gets the
// redacted public view of a published quiz, access code permitting.
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		qz, err := store.GetQuiz(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		if canManage(r, qz) {
			respondJSON(w, http.StatusOK, qz)
			return
		}
		if qz.Status != quiz.StatusPublished {
			// Drafts are invisible to non-owners.
			http.Error(w, quiz.ErrNotPublished.Error(), errStatus(quiz.ErrNotPublished))
			return
		}
		if qz.Access == quiz.AccessCode && r.URL.Query().Get("code") != qz.AccessCode {
			http.Error(w, quiz.ErrBadAccessCode.Error(), http.StatusForbidden)
			return
		}
		respondJSON(w, http.StatusOK, quiz.PublicView(qz))
	}
}

// GET /public/quizzes/code/{code}
func GetQuizByCodeHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		qz, err := store.GetQuizByCode(r.Context(), code)
		if err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		if qz.Status != quiz.StatusPublished {
			http.Error(w, quiz.ErrNotPublished.Error(), errStatus(quiz.ErrNotPublished))
			return
		}
		respondJSON(w, http.StatusOK, quiz.PublicView(qz))
	}
}

// GET /quizzes?q=...&limit=50&offset=0
func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListQuizzes(r.Context(), quiz.ListOpts{
			Q:          strings.TrimSpace(r.URL.Query().Get("q")),
			Limit:      parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset:     parseIntDefault(r.URL.Query().Get("offset"), 0),
			ViewerID:   auth.SubjectFromContext(r.Context()),
			ViewerRole: rbac.RoleFromContext(r.Context()),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

type publishReq struct {
	Access     string `json:"access,omitempty"`      // public|code
	AccessCode string `json:"access_code,omitempty"` // optional explicit code
}

// POST /quizzes/{quizID}/publish
func PublishQuizHandler(store quiz.Store, events *audit.EventRepo) http.HandlerFunc {
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
		var req publishReq
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req) // empty body publishes as-is
		}
		changed := false
		if req.Access != "" {
			if req.Access != quiz.AccessPublic && req.Access != quiz.AccessCode {
				http.Error(w, "access must be public or code", http.StatusBadRequest)
				return
			}
			qz.Access = req.Access
			changed = true
		}
		if req.AccessCode != "" {
			qz.AccessCode = req.AccessCode
			changed = true
		}
		if qz.Access == quiz.AccessCode && qz.AccessCode == "" {
			qz.AccessCode = newAccessCode()
			changed = true
		}
		qz.Status = quiz.StatusPublished
		if changed {
			if err := store.PutQuiz(r.Context(), qz); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		} else {
			// Access settings untouched: a plain status flip.
			if err := store.SetStatus(r.Context(), qz.ID, quiz.StatusPublished); err != nil {
				http.Error(w, err.Error(), errStatus(err))
				return
			}
		}
		actor := auth.SubjectFromContext(r.Context())
		auditAppend(r, events, audit.TypeQuizPublished, qz.ID, actor,
			map[string]string{"access": qz.Access})
		out := map[string]string{"status": "published", "id": qz.ID, "access": qz.Access}
		if qz.Access == quiz.AccessCode {
			out["access_code"] = qz.AccessCode
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// DELETE /quizzes/{quizID}
func DeleteQuizHandler(store quiz.Store, events *audit.EventRepo) http.HandlerFunc {
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
		if err := store.DeleteQuiz(r.Context(), id); err != nil {
			http.Error(w, err.Error(), errStatus(err))
			return
		}
		actor := auth.SubjectFromContext(r.Context())
		auditAppend(r, events, audit.TypeQuizDeleted, id, actor, nil)
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// canManage reports whether the request subject owns the quiz or is admin.
func canManage(r *http.Request, qz quiz.Quiz) bool {
	sub := auth.SubjectFromContext(r.Context())
	if sub != "" && sub == qz.OwnerID {
		return true
	}
	return rbac.RoleFromContext(r.Context()) == "admin"
}

// newAccessCode returns a short shareable secret.
func newAccessCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
