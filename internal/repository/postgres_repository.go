// internal/repository/postgres_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"imagify-backend/internal/models"
	apperrors "imagify-backend/pkg/errors"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const pgUniqueViolation = "23505"

// PostgresUserRepository keeps users in the users table. The id column is an
// opaque text key; rows created here get the same 24 character hex keys the
// Mongo store issues.
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, name, COALESCE(email, ''), credit_balance, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	stampUser(user)

	query := `
		INSERT INTO users (id, name, email, credit_balance, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.CreditBalance, user.CreatedAt, user.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return apperrors.NewUserAlreadyExistsError()
	}
	return err
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, apperrors.NewUserNotFoundError()
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, apperrors.NewUserNotFoundError()
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresUserRepository) UpdateCreditBalance(ctx context.Context, id string, balance int) (*models.User, error) {
	if id == "" {
		return nil, apperrors.NewUserNotFoundError()
	}

	query := `
		UPDATE users
		SET credit_balance = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, query, balance, time.Now(), id))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.CreditBalance, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewUserNotFoundError()
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// PostgresUsageRepository keeps generation history in the generations table.
type PostgresUsageRepository struct {
	db *sql.DB
}

func NewPostgresUsageRepository(db *sql.DB) *PostgresUsageRepository {
	return &PostgresUsageRepository{db: db}
}

func (r *PostgresUsageRepository) CreateRecord(ctx context.Context, record *models.GenerationRecord) error {
	stampRecord(record)

	query := `
		INSERT INTO generations
			(id, user_id, prompt, source, success, message, credits_used, request_id, process_time_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.Prompt, record.Source, record.Success,
		record.Message, record.CreditsUsed, record.RequestID, record.ProcessTime, record.CreatedAt)
	return err
}

func (r *PostgresUsageRepository) GetUserHistory(ctx context.Context, userID string, limit int) ([]models.GenerationRecord, error) {
	query := `
		SELECT id, user_id, prompt, source, success, message, credits_used, request_id, process_time_ms, created_at
		FROM generations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.GenerationRecord{}
	for rows.Next() {
		var rec models.GenerationRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Prompt, &rec.Source, &rec.Success,
			&rec.Message, &rec.CreditsUsed, &rec.RequestID, &rec.ProcessTime, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
