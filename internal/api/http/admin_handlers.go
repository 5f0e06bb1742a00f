package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/formhive/formhive/internal/audit"
	"github.com/formhive/formhive/internal/auth"
)

// GET /admin/users?role=...
func ListUsersHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := r.URL.Query().Get("role")
		var rows *sql.Rows
		var err error
		if role == "" {
			rows, err = db.QueryContext(r.Context(),
				`SELECT id,username,role,created_at FROM users ORDER BY username`)
		} else {
			rows, err = db.QueryContext(r.Context(),
				`SELECT id,username,role,created_at FROM users WHERE role=$1 ORDER BY username`, role)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()
		out := []auth.User{}
		for rows.Next() {
			var u auth.User
			if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.CreatedAt); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, u)
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// DELETE /admin/users with body {"user_id": "..."}.
// Removes the user and everything they produced: their responses, their
// quizzes (responses to those cascade via FK).
func DeleteUserHandler(db *sql.DB, events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID string `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
			http.Error(w, "user_id required", http.StatusBadRequest)
			return
		}

		// Accept id or username; cascade always runs on the id.
		var userID string
		err := db.QueryRowContext(r.Context(),
			`SELECT id FROM users WHERE id=$1 OR username=$1`, req.UserID).Scan(&userID)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		tx, err := db.BeginTx(r.Context(), nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if _, err := tx.ExecContext(r.Context(),
			`DELETE FROM responses WHERE user_id=$1`, userID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := tx.ExecContext(r.Context(),
			`DELETE FROM quizzes WHERE owner_id=$1`, userID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := tx.ExecContext(r.Context(),
			`DELETE FROM users WHERE id=$1`, userID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		actor := auth.SubjectFromContext(r.Context())
		auditAppend(r, events, audit.TypeUserDeleted, userID, actor, nil)
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// GET /admin/audit?q=...
func AuditSearchHandler(events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := events.Search(r.Context(), r.URL.Query().Get("q"),
			parseIntDefault(r.URL.Query().Get("limit"), 100))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}
