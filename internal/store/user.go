package store

import (
	"context"
	"fmt"
	"time"

	"dinehub/internal/database"
	"dinehub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, phone, email, password_hash, user_type, session, session_expiry,
	customer_id, credit_card_number, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Phone,
		&u.Email,
		&u.PasswordHash,
		&u.UserType,
		&u.Session,
		&u.SessionExpiry,
		&u.CustomerID,
		&u.CreditCardNumber,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.Querier, userID uuid.UUID) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", translate(err))
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", translate(err))
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.Querier, u *model.User) error {
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, name, phone, email, password_hash, user_type, customer_id, credit_card_number)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		u.ID,
		u.Name,
		u.Phone,
		u.Email,
		u.PasswordHash,
		u.UserType,
		u.CustomerID,
		u.CreditCardNumber,
	)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("CreateUser: %w", translate(err))
	}
	return nil
}

// UpdateUserSession 覆寫使用者目前的 session，不保留舊值
func UpdateUserSession(ctx context.Context, db database.Querier, userID uuid.UUID, session string, expiry time.Time) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET session = $1, session_expiry = $2, updated_at = now()
		 WHERE id = $3`,
		session,
		expiry,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserSession: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserSession: %w", ErrNotFound)
	}
	return nil
}

// ClearExpiredSessions 清除已過期的 session 欄位，回傳影響筆數
func ClearExpiredSessions(ctx context.Context, db database.Querier, now time.Time) (int64, error) {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET session = NULL, session_expiry = NULL
		 WHERE session_expiry IS NOT NULL AND session_expiry < $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("ClearExpiredSessions: %w", translate(err))
	}
	return tag.RowsAffected(), nil
}
