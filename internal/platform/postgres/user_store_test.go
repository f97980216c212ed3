//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lenta-app/lenta-api/internal/domain"
	"github.com/lenta-app/lenta-api/internal/platform/postgres"
	"github.com/lenta-app/lenta-api/internal/store"
	"github.com/lenta-app/lenta-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_InsertAndLogin(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		userStore := postgres.NewUserStore(tx, nil)

		reg := domain.Registration{
			FirstName: "Alice",
			LastName:  "Anderson",
			About:     "likes long walks through query plans",
			Password:  "hunter2",
			Login:     "alice-insert",
		}
		require.NoError(t, userStore.Insert(ctx, &reg))

		exists, err := userStore.ExistsByLogin(ctx, reg.Login)
		require.NoError(t, err)
		assert.True(t, exists, "inserted login should exist")

		exists, err = userStore.ExistsByLogin(ctx, "nobody-with-this-login")
		require.NoError(t, err)
		assert.False(t, exists)

		user, err := userStore.GetByLoginAndPassword(ctx, reg.Login, reg.Password)
		require.NoError(t, err)
		assert.Equal(t, reg.FirstName, user.FirstName)
		assert.Equal(t, reg.LastName, user.LastName)
		assert.Equal(t, reg.About, user.About)
		assert.Equal(t, reg.Login, user.Login)
		assert.False(t, user.DateRegistration.IsZero(),
			"registration timestamp should be assigned by the store")

		// Wrong password must look exactly like a missing user.
		_, err = userStore.GetByLoginAndPassword(ctx, reg.Login, "wrong")
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		fetched, err := userStore.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Login, fetched.Login)

		_, err = userStore.GetByID(ctx, user.ID+100000)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStore_DuplicateLogin(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		userStore := postgres.NewUserStore(tx, nil)
		mustRegisterUser(ctx, t, tx, "dup-login")

		reg := domain.Registration{
			FirstName: "Other",
			LastName:  "Person",
			Password:  "different",
			Login:     "dup-login",
		}
		err := userStore.Insert(ctx, &reg)
		assert.ErrorIs(t, err, store.ErrLoginExists,
			"the unique index should reject the second insert")
	})
}

func TestUserStore_Avatars(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		userStore := postgres.NewUserStore(tx, nil)
		user := mustRegisterUser(ctx, t, tx, "avatar-user")

		// Fresh users have no avatars yet.
		crop, full, err := userStore.GetAvatar(ctx, user.Login)
		require.NoError(t, err)
		assert.Empty(t, crop)
		assert.Empty(t, full)

		cropBytes := []byte{0xde, 0xad, 0xbe, 0xef}
		fullBytes := []byte{0xca, 0xfe, 0xba, 0xbe, 0x00, 0x01}
		require.NoError(t, userStore.SetAvatar(ctx, user.Login, cropBytes, fullBytes))

		crop, full, err = userStore.GetAvatar(ctx, user.Login)
		require.NoError(t, err)
		assert.Equal(t, cropBytes, crop, "crop avatar bytes should round-trip unchanged")
		assert.Equal(t, fullBytes, full, "full avatar bytes should round-trip unchanged")

		err = userStore.SetAvatar(ctx, "no-such-login", cropBytes, fullBytes)
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		_, _, err = userStore.GetAvatar(ctx, "no-such-login")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStore_SearchByName(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
		defer cancel()

		userStore := postgres.NewUserStore(tx, nil)

		reg := domain.Registration{
			FirstName: "Yevgenia",
			LastName:  "Smirnova",
			Password:  "pw",
			Login:     "search-target",
		}
		require.NoError(t, userStore.Insert(ctx, &reg))

		// Case-insensitive match on any of first name, last name, login.
		for _, query := range []string{"yevgenia", "SMIRNOVA", "search-tar"} {
			users, err := userStore.SearchByName(ctx, query)
			require.NoError(t, err, "query %q", query)
			require.NotEmpty(t, users, "query %q should match", query)
			assert.Equal(t, "search-target", users[0].Login)
		}

		users, err := userStore.SearchByName(ctx, "zzz-no-match-zzz")
		require.NoError(t, err)
		assert.Empty(t, users, "non-matching query should return an empty slice")
	})
}
