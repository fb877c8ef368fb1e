package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"estate/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

type Storage struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db, q: db}
}

// Open подключается к базе. Для sqlite3 включаются внешние ключи.
func Open(driver, dsn string, maxConns int) (*sqlx.DB, error) {
	if driver == "sqlite3" && !strings.Contains(dsn, "_foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on"
	}
	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %s: %w", driver, err)
	}
	if maxConns > 0 {
		conn.SetMaxOpenConns(maxConns)
		conn.SetMaxIdleConns(maxConns)
	}
	return conn, nil
}

// WithTx выполняет fn в одной транзакции. Любая ошибка откатывает все изменения.
func (s *Storage) WithTx(ctx context.Context, fn func(tx *Storage) error) (err error) {
	if _, inTx := s.q.(*sqlx.Tx); inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Storage{db: s.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", translate(err))
	}
	return nil
}

func (s *Storage) isPostgres() bool {
	return s.q.DriverName() == "postgres"
}

// forUpdate добавляет блокировку строки там, где она поддерживается
func (s *Storage) forUpdate(query string) string {
	if s.isPostgres() {
		return query + " FOR UPDATE"
	}
	return query
}

// Ограничения схемы и сообщения для пользователя
var constraintMessages = map[string]string{
	"check_expected_price_positive": "The expected price must be strictly positive.",
	"check_selling_price_positive":  "The selling price must be positive.",
	"check_price_positive":          "The price offer must be strictly positive.",
	"property_type_name_unique":     "Property type names must be unique.",
	"property_type.name":            "Property type names must be unique.",
	"property_tag_name_unique":      "The name must be unique.",
	"property_tag.name":             "The name must be unique.",
	"users_login_key":               "The login must be unique.",
	"users.login":                   "The login must be unique.",
}

const acceptedOfferIndex = "offer_one_accepted_per_property"

var errAlreadyAccepted = &models.ConflictError{Message: "This property already has an accepted offer."}

// translate превращает ошибки драйверов в доменные ошибки
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == acceptedOfferIndex {
				return errAlreadyAccepted
			}
			return constraintError(pqErr.Constraint, "The value must be unique.")
		case "23514":
			return constraintError(pqErr.Constraint, "A check constraint was violated.")
		case "23503":
			return models.NewValidationError("Referenced record does not exist.")
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		msg := liteErr.Error()
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			if strings.Contains(msg, "offer.property_id") {
				return errAlreadyAccepted
			}
			return constraintError(constraintName(msg), "The value must be unique.")
		case sqlite3.ErrConstraintCheck:
			return constraintError(constraintName(msg), "A check constraint was violated.")
		case sqlite3.ErrConstraintForeignKey:
			return models.NewValidationError("Referenced record does not exist.")
		}
	}
	return err
}

// constraintName вырезает имя ограничения из "CHECK constraint failed: name"
func constraintName(msg string) string {
	if _, after, ok := strings.Cut(msg, "failed: "); ok {
		return strings.TrimSpace(after)
	}
	return msg
}

func constraintError(name, fallback string) error {
	if msg, ok := constraintMessages[name]; ok {
		return &models.ValidationError{Message: msg}
	}
	return &models.ValidationError{Message: fallback}
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// User (Продавец)

func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	query := `
        INSERT INTO users (login, name, created_at)
        VALUES ($1, $2, $3)
        RETURNING id`
	err := s.q.QueryRowxContext(ctx, query, u.Login, u.Name, u.CreatedAt).Scan(&u.ID)
	return translate(err)
}

func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	u := &models.User{}
	query := `SELECT id, login, name, created_at FROM users WHERE id=$1`
	if err := sqlx.GetContext(ctx, s.q, u, query, id); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (s *Storage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	u := &models.User{}
	query := `SELECT id, login, name, created_at FROM users WHERE login=$1`
	if err := sqlx.GetContext(ctx, s.q, u, query, login); err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// Partner (Контрагент)

func (s *Storage) CreatePartner(ctx context.Context, p *models.Partner) error {
	query := `
        INSERT INTO partner (name, email, created_at)
        VALUES ($1, $2, $3)
        RETURNING id`
	err := s.q.QueryRowxContext(ctx, query, p.Name, p.Email, p.CreatedAt).Scan(&p.ID)
	return translate(err)
}

func (s *Storage) GetPartner(ctx context.Context, id int) (*models.Partner, error) {
	p := &models.Partner{}
	query := `SELECT id, name, email, created_at FROM partner WHERE id=$1`
	if err := sqlx.GetContext(ctx, s.q, p, query, id); err != nil {
		return nil, translate(err)
	}
	return p, nil
}
