package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
}

// CreateUser inserts a user with a bcrypt-hashed password.
func CreateUser(ctx context.Context, db *sql.DB, username, password, role string) (User, error) {
	if role == "" {
		role = "user"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return User{}, err
	}
	u := User{ID: uuid.NewString(), Username: username, Role: role, CreatedAt: time.Now().Unix()}

	var one int
	err = db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, username).Scan(&one)
	if err == nil {
		return User{}, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at) VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Username, string(hash), u.Role, u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate checks username/password and returns the stored user.
func Authenticate(ctx context.Context, db *sql.DB, username, password string) (User, error) {
	var u User
	var hash string
	err := db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users WHERE username=$1`,
		username).Scan(&u.ID, &u.Username, &hash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// EnsureAdmin bootstraps the admin account from config when it is absent.
// passHash is an already-bcrypt'ed hash; empty disables bootstrapping.
func EnsureAdmin(ctx context.Context, db *sql.DB, username, passHash string) error {
	if username == "" || passHash == "" {
		return nil
	}
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, username).Scan(&one)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at) VALUES ($1,$2,$3,'admin',$4)`,
		uuid.NewString(), username, passHash, time.Now().Unix())
	return err
}
