//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lenta-app/lenta-api/internal/platform/postgres"
	"github.com/lenta-app/lenta-api/internal/store"
	"github.com/lenta-app/lenta-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowStore_FollowLifecycle(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		followStore := postgres.NewFollowStore(tx, nil)
		author := mustRegisterUser(ctx, t, tx, "follow-author")
		follower := mustRegisterUser(ctx, t, tx, "follow-follower")

		following, err := followStore.IsFollowing(ctx, author.ID, follower.ID)
		require.NoError(t, err)
		assert.False(t, following, "no edge should exist before Follow")

		count, err := followStore.FollowerCount(ctx, author.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		require.NoError(t, followStore.Follow(ctx, author.ID, follower.ID))

		following, err = followStore.IsFollowing(ctx, author.ID, follower.ID)
		require.NoError(t, err)
		assert.True(t, following)

		count, err = followStore.FollowerCount(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// The edge is directed: the reverse direction does not exist.
		following, err = followStore.IsFollowing(ctx, follower.ID, author.ID)
		require.NoError(t, err)
		assert.False(t, following)

		require.NoError(t, followStore.Unfollow(ctx, author.ID, follower.ID))

		count, err = followStore.FollowerCount(ctx, author.ID)
		require.NoError(t, err)
		assert.Zero(t, count, "count should drop back to zero after Unfollow")

		// Unfollowing an absent edge is a no-op.
		require.NoError(t, followStore.Unfollow(ctx, author.ID, follower.ID))
	})
}

func TestFollowStore_DuplicateFollow(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)

	// The failed insert aborts the surrounding transaction, so the
	// violation must be the last statement in its own rollback scope.
	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		followStore := postgres.NewFollowStore(tx, nil)
		author := mustRegisterUser(ctx, t, tx, "dup-follow-author")
		follower := mustRegisterUser(ctx, t, tx, "dup-follow-follower")

		require.NoError(t, followStore.Follow(ctx, author.ID, follower.ID))

		err := followStore.Follow(ctx, author.ID, follower.ID)
		assert.ErrorIs(t, err, store.ErrAlreadyFollowing,
			"the unique index should reject a second identical edge")
	})
}

func TestFollowStore_FollowUnknownUser(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		followStore := postgres.NewFollowStore(tx, nil)
		follower := mustRegisterUser(ctx, t, tx, "follow-orphan")

		err := followStore.Follow(ctx, 99999999, follower.ID)
		assert.ErrorIs(t, err, store.ErrInvalidReference,
			"a follow edge to a missing user should fail the foreign key")
	})
}

func TestFollowStore_PopularUsers(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		followStore := postgres.NewFollowStore(tx, nil)
		star := mustRegisterUser(ctx, t, tx, "popular-star")
		minor := mustRegisterUser(ctx, t, tx, "popular-minor")
		fanA := mustRegisterUser(ctx, t, tx, "popular-fan-a")
		fanB := mustRegisterUser(ctx, t, tx, "popular-fan-b")

		require.NoError(t, followStore.Follow(ctx, star.ID, fanA.ID))
		require.NoError(t, followStore.Follow(ctx, star.ID, fanB.ID))
		require.NoError(t, followStore.Follow(ctx, minor.ID, fanA.ID))

		popular, err := followStore.PopularUsers(ctx, 0)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(popular), 2)

		byID := make(map[int64]int64, len(popular))
		for i, entry := range popular {
			byID[entry.ID] = entry.Followers
			if i > 0 {
				assert.GreaterOrEqual(t, popular[i-1].Followers, entry.Followers,
					"ranking must be ordered by follower count descending")
			}
		}
		assert.Equal(t, int64(2), byID[star.ID])
		assert.Equal(t, int64(1), byID[minor.ID])

		// Excluding a user removes them from the ranking entirely.
		popular, err = followStore.PopularUsers(ctx, star.ID)
		require.NoError(t, err)
		for _, entry := range popular {
			assert.NotEqual(t, star.ID, entry.ID)
		}

		// Users without followers never appear.
		_, hasFan := byID[fanB.ID]
		assert.False(t, hasFan)
	})
}
