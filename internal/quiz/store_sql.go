package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLStore implements Store over database/sql. Questions and settings are
// stored as JSON columns; aggregates (total_points, response_count) are
// denormalized onto the quizzes row.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutQuiz(ctx context.Context, qz Quiz) error {
	qj, err := json.Marshal(qz.Questions)
	if err != nil {
		return err
	}
	sj, err := json.Marshal(qz.Settings)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes
		(id,owner_id,title,description,status,access,access_code,settings_json,questions_json,total_points,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11)
		ON CONFLICT (id) DO UPDATE SET
			title=EXCLUDED.title, description=EXCLUDED.description,
			status=EXCLUDED.status, access=EXCLUDED.access, access_code=EXCLUDED.access_code,
			settings_json=EXCLUDED.settings_json, questions_json=EXCLUDED.questions_json,
			total_points=EXCLUDED.total_points, updated_at=EXCLUDED.updated_at`,
		qz.ID, qz.OwnerID, qz.Title, qz.Description, qz.Status, qz.Access, qz.AccessCode,
		string(sj), string(qj), qz.TotalPoints, now)
	return err
}

const quizCols = `id,owner_id,title,description,status,access,access_code,settings_json,questions_json,total_points,response_count,created_at,updated_at`

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+quizCols+` FROM quizzes WHERE id=$1`, id)
	return scanQuiz(row)
}

func (s *SQLStore) GetQuizByCode(ctx context.Context, code string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+quizCols+` FROM quizzes WHERE access='code' AND access_code=$1`, code)
	return scanQuiz(row)
}

func scanQuiz(row *sql.Row) (Quiz, error) {
	var qz Quiz
	var sj, qj string
	err := row.Scan(&qz.ID, &qz.OwnerID, &qz.Title, &qz.Description, &qz.Status, &qz.Access,
		&qz.AccessCode, &sj, &qj, &qz.TotalPoints, &qz.ResponseCount, &qz.CreatedAt, &qz.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(sj), &qz.Settings); err != nil {
		return Quiz{}, fmt.Errorf("settings for quiz %s: %w", qz.ID, err)
	}
	if err := json.Unmarshal([]byte(qj), &qz.Questions); err != nil {
		return Quiz{}, fmt.Errorf("questions for quiz %s: %w", qz.ID, err)
	}
	return qz, nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context, opts ListOpts) ([]QuizSummary, error) {
	if opts.Limit <= 0 || opts.Limit > 200 {
		opts.Limit = 50
	}
	where := []string{"1=1"}
	args := []any{}
	n := 0
	arg := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}
	if q := strings.TrimSpace(opts.Q); q != "" {
		p := arg("%" + q + "%")
		where = append(where, fmt.Sprintf("(title LIKE %s OR description LIKE %s)", p, p))
	}
	if opts.ViewerRole != "admin" {
		where = append(where, fmt.Sprintf(
			"(owner_id=%s OR (status='published' AND access='public'))", arg(opts.ViewerID)))
	}
	query := `SELECT id,owner_id,title,description,status,access,questions_json,total_points,response_count,created_at
		FROM quizzes WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at DESC LIMIT ` + arg(opts.Limit) + ` OFFSET ` + arg(opts.Offset)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []QuizSummary{}
	for rows.Next() {
		var sum QuizSummary
		var qj string
		if err := rows.Scan(&sum.ID, &sum.OwnerID, &sum.Title, &sum.Description, &sum.Status,
			&sum.Access, &qj, &sum.TotalPoints, &sum.ResponseCount, &sum.CreatedAt); err != nil {
			return nil, err
		}
		var qs []Question
		if err := json.Unmarshal([]byte(qj), &qs); err == nil {
			sum.QuestionCount = len(qs)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLStore) SetStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE quizzes SET status=$1, updated_at=$2 WHERE id=$3`, status, time.Now().Unix(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) PutResponse(ctx context.Context, r Response) error {
	aj, err := json.Marshal(r.Answers)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	_, err = tx.ExecContext(ctx, `INSERT INTO responses
		(id,quiz_id,user_id,score,total_points,percentage,passed,completion_time,answers_json,submitted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		r.ID, r.QuizID, r.UserID, r.Score, r.TotalPoints, r.Percentage, r.Passed,
		r.CompletionTime, string(aj), r.SubmittedAt)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE quizzes SET response_count=response_count+1 WHERE id=$1`, r.QuizID); err != nil {
		return err
	}
	return tx.Commit()
}

const respCols = `id,quiz_id,user_id,score,total_points,percentage,passed,completion_time,answers_json,submitted_at`

func (s *SQLStore) GetResponse(ctx context.Context, id string) (Response, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+respCols+` FROM responses WHERE id=$1`, id)
	var r Response
	var aj string
	err := row.Scan(&r.ID, &r.QuizID, &r.UserID, &r.Score, &r.TotalPoints, &r.Percentage,
		&r.Passed, &r.CompletionTime, &aj, &r.SubmittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Response{}, ErrResponseNotFound
		}
		return Response{}, err
	}
	if err := json.Unmarshal([]byte(aj), &r.Answers); err != nil {
		return Response{}, fmt.Errorf("answers for response %s: %w", r.ID, err)
	}
	return r, nil
}

func (s *SQLStore) ListResponses(ctx context.Context, quizID string, opts ResponseListOpts) ([]Response, error) {
	if opts.Limit <= 0 || opts.Limit > 500 {
		opts.Limit = 100
	}
	query := `SELECT ` + respCols + ` FROM responses WHERE quiz_id=$1`
	args := []any{quizID}
	if opts.UserID != "" {
		query += ` AND user_id=$2`
		args = append(args, opts.UserID)
	}
	query += fmt.Sprintf(` ORDER BY submitted_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Response{}
	for rows.Next() {
		var r Response
		var aj string
		if err := rows.Scan(&r.ID, &r.QuizID, &r.UserID, &r.Score, &r.TotalPoints, &r.Percentage,
			&r.Passed, &r.CompletionTime, &aj, &r.SubmittedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(aj), &r.Answers); err != nil {
			r.Answers = nil
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) HasResponse(ctx context.Context, quizID, userID string) (bool, error) {
	if userID == "" {
		return false, nil // anonymous respondents are never retake-gated
	}
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM responses WHERE quiz_id=$1 AND user_id=$2 LIMIT 1`, quizID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
