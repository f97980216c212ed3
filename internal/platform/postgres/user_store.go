package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/platform/logger"
	"github.com/lenta-app/lenta-api/internal/store"
)

// UserStore implements the store.UserStore interface using a PostgreSQL
// database as the storage backend.
//
// Credentials are compared exactly as stored; the login query matches the
// password column in SQL. Existing deployments created plaintext rows, so
// hashing here would lock every current user out.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of the UserStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// userColumns is the select list shared by every profile query.
const userColumns = `id, first_name, last_name, COALESCE(about, ''), password, login,
	crop_avatar, full_avatar, date_registration`

// scanUser maps one row of userColumns onto a domain.User.
func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.About,
		&user.Password,
		&user.Login,
		&user.CropAvatar,
		&user.FullAvatar,
		&user.DateRegistration,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Insert implements store.UserStore.Insert
// It saves a new user row; the store assigns the ID and registration
// timestamp. Returns store.ErrLoginExists when the login is already taken.
func (s *UserStore) Insert(ctx context.Context, reg *domain.Registration) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reg.Validate(); err != nil {
		log.Warn("registration validation failed",
			slog.String("error", err.Error()),
			slog.String("login", reg.Login))
		return err
	}

	query := `
		INSERT INTO users (first_name, last_name, about, password, login)
		VALUES ($1, $2, $3, $4, $5)
	`

	about := sql.NullString{String: reg.About, Valid: reg.About != ""}

	_, err := s.db.ExecContext(
		ctx,
		query,
		reg.FirstName,
		reg.LastName,
		about,
		reg.Password,
		reg.Login,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("login already taken", slog.String("login", reg.Login))
			return MapUniqueViolation(err, store.ErrLoginExists)
		}
		log.Error("failed to insert user",
			slog.String("error", err.Error()),
			slog.String("login", reg.Login))
		return MapError(err)
	}

	log.Info("user created", slog.String("login", reg.Login))
	return nil
}

// ExistsByLogin implements store.UserStore.ExistsByLogin
func (s *UserStore) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE login = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, login).Scan(&exists); err != nil {
		log.Error("failed to check login existence",
			slog.String("error", err.Error()),
			slog.String("login", login))
		return false, MapError(err)
	}
	return exists, nil
}

// GetByLoginAndPassword implements store.UserStore.GetByLoginAndPassword
// It retrieves a user by exact credential match.
// Returns store.ErrUserNotFound when no row matches.
func (s *UserStore) GetByLoginAndPassword(
	ctx context.Context,
	login, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE login = $1 AND password = $2
	`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, login, password))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("credentials did not match", slog.String("login", login))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by credentials",
			slog.String("error", err.Error()),
			slog.String("login", login))
		return nil, MapError(err)
	}

	return user, nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, MapError(err)
	}

	return user, nil
}

// GetAvatar implements store.UserStore.GetAvatar
// NULL avatar columns scan to nil slices, which callers see as "no avatar
// uploaded yet"; only a missing user is an error.
func (s *UserStore) GetAvatar(ctx context.Context, login string) (crop, full []byte, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT crop_avatar, full_avatar
		FROM users
		WHERE login = $1
	`

	err = s.db.QueryRowContext(ctx, query, login).Scan(&crop, &full)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found for avatar lookup", slog.String("login", login))
			return nil, nil, store.ErrUserNotFound
		}
		log.Error("failed to get avatar",
			slog.String("error", err.Error()),
			slog.String("login", login))
		return nil, nil, MapError(err)
	}

	return crop, full, nil
}

// SetAvatar implements store.UserStore.SetAvatar
// Returns store.ErrUserNotFound if the login does not exist.
func (s *UserStore) SetAvatar(ctx context.Context, login string, crop, full []byte) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET crop_avatar = $2, full_avatar = $3
		WHERE login = $1
	`

	result, err := s.db.ExecContext(ctx, query, login, crop, full)
	if err != nil {
		log.Error("failed to set avatar",
			slog.String("error", err.Error()),
			slog.String("login", login))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("login", login))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("user not found for avatar update", slog.String("login", login))
		return store.ErrUserNotFound
	}

	log.Info("avatar updated", slog.String("login", login))
	return nil
}

// SearchByName implements store.UserStore.SearchByName
// It matches the query case-insensitively against first name, last name and
// login. Returns an empty slice when nothing matches.
func (s *UserStore) SearchByName(ctx context.Context, query string) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stmt := `
		SELECT ` + userColumns + `
		FROM users
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR login ILIKE $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, stmt, "%"+query+"%")
	if err != nil {
		log.Error("failed to search users",
			slog.String("error", err.Error()),
			slog.String("query", query))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to iterate user rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return users, nil
}
