package postgres

import (
	"context"
	"log/slog"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/platform/logger"
	"github.com/lenta-app/lenta-api/internal/store"
)

// FollowStore implements the store.FollowStore interface using a PostgreSQL
// database as the storage backend. The unique index on
// (users_author_id, users_follower_id) makes Follow safe against the
// check-then-insert race: the loser of a concurrent pair gets
// store.ErrAlreadyFollowing instead of a duplicate edge.
type FollowStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewFollowStore creates a new PostgreSQL implementation of the FollowStore
// interface. If logger is nil, a default logger will be used.
func NewFollowStore(db store.DBTX, logger *slog.Logger) *FollowStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FollowStore{
		db:     db,
		logger: logger.With(slog.String("component", "follow_store")),
	}
}

// Ensure FollowStore implements store.FollowStore interface
var _ store.FollowStore = (*FollowStore)(nil)

// IsFollowing implements store.FollowStore.IsFollowing
// Absence of an edge is success(false), never an error.
func (s *FollowStore) IsFollowing(ctx context.Context, authorID, followerID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM users_followers
			WHERE users_author_id = $1 AND users_follower_id = $2
		)
	`

	var following bool
	if err := s.db.QueryRowContext(ctx, query, authorID, followerID).Scan(&following); err != nil {
		log.Error("failed to check follow edge",
			slog.String("error", err.Error()),
			slog.Int64("author_id", authorID),
			slog.Int64("follower_id", followerID))
		return false, MapError(err)
	}
	return following, nil
}

// FollowerCount implements store.FollowStore.FollowerCount
// Returns 0 when the author has no followers.
func (s *FollowStore) FollowerCount(ctx context.Context, authorID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*) FROM users_followers
		WHERE users_author_id = $1
	`

	var count int64
	if err := s.db.QueryRowContext(ctx, query, authorID).Scan(&count); err != nil {
		log.Error("failed to count followers",
			slog.String("error", err.Error()),
			slog.Int64("author_id", authorID))
		return 0, MapError(err)
	}
	return count, nil
}

// Follow implements store.FollowStore.Follow
// Returns store.ErrAlreadyFollowing when the edge exists and
// store.ErrInvalidReference when either user is missing.
func (s *FollowStore) Follow(ctx context.Context, authorID, followerID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO users_followers (users_author_id, users_follower_id)
		VALUES ($1, $2)
	`

	_, err := s.db.ExecContext(ctx, query, authorID, followerID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("follow edge already exists",
				slog.Int64("author_id", authorID),
				slog.Int64("follower_id", followerID))
			return MapUniqueViolation(err, store.ErrAlreadyFollowing)
		}
		log.Error("failed to insert follow edge",
			slog.String("error", err.Error()),
			slog.Int64("author_id", authorID),
			slog.Int64("follower_id", followerID))
		return MapError(err)
	}

	log.Info("follow edge created",
		slog.Int64("author_id", authorID),
		slog.Int64("follower_id", followerID))
	return nil
}

// Unfollow implements store.FollowStore.Unfollow
// Deleting an absent edge is a no-op, not an error.
func (s *FollowStore) Unfollow(ctx context.Context, authorID, followerID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM users_followers
		WHERE users_author_id = $1 AND users_follower_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, authorID, followerID)
	if err != nil {
		log.Error("failed to delete follow edge",
			slog.String("error", err.Error()),
			slog.Int64("author_id", authorID),
			slog.Int64("follower_id", followerID))
		return MapError(err)
	}

	log.Info("follow edge removed",
		slog.Int64("author_id", authorID),
		slog.Int64("follower_id", followerID))
	return nil
}

// PopularUsers implements store.FollowStore.PopularUsers
// Users are ranked by incoming edge count descending; ties break on
// ascending user ID. Users without followers never appear, matching the
// join semantics of the ranking view.
func (s *FollowStore) PopularUsers(
	ctx context.Context,
	excludingUserID int64,
) ([]*domain.PopularUser, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT u.id, u.first_name, u.last_name, COALESCE(u.about, ''),
			u.crop_avatar, u.date_registration, COUNT(uf.id) AS followers
		FROM users AS u
		JOIN users_followers AS uf ON uf.users_author_id = u.id
		WHERE u.id != $1
		GROUP BY u.id
		ORDER BY followers DESC, u.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, excludingUserID)
	if err != nil {
		log.Error("failed to query popular users",
			slog.String("error", err.Error()),
			slog.Int64("excluding_user_id", excludingUserID))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	popular := make([]*domain.PopularUser, 0)
	for rows.Next() {
		var user domain.PopularUser
		err := rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.About,
			&user.CropAvatar,
			&user.DateRegistration,
			&user.Followers,
		)
		if err != nil {
			log.Error("failed to scan popular user row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		popular = append(popular, &user)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to iterate popular user rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return popular, nil
}
