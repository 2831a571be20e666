package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/pkg/auth"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
	pkgErrors "taskboard/pkg/errors"
)

func TestAuthorization(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	authz := service.NewAuthorizationService(store.Projects, store.Members)

	owner := testutil.CreateUser(t, store, "owner")
	member := testutil.CreateUser(t, store, "member")
	stranger := testutil.CreateUser(t, store, "stranger")
	project := testutil.CreateProject(t, store, owner, "Launch")
	testutil.AddMember(t, store, project, member, "developer")

	t.Run("has access", func(t *testing.T) {
		for _, tc := range []struct {
			userID string
			want   bool
		}{
			{owner.ID, true},
			{member.ID, true},
			{stranger.ID, false},
			{"", false},
		} {
			ok, err := authz.HasProjectAccess(ctx, project.ID, tc.userID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok, "user %q", tc.userID)
		}
	})

	t.Run("is owner", func(t *testing.T) {
		ok, err := authz.IsProjectOwner(ctx, project.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = authz.IsProjectOwner(ctx, project.ID, member.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing project is not found, not forbidden", func(t *testing.T) {
		_, err := authz.HasProjectAccess(ctx, "missing", owner.ID)
		assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)

		_, err = authz.IsProjectOwner(ctx, "missing", owner.ID)
		assert.ErrorIs(t, err, pkgErrors.ErrProjectNotFound)

		_, err = authz.CheckProjectAccess(ctx, "", owner.ID)
		assert.Equal(t, pkgErrors.KindNotFound, pkgErrors.KindOf(err))
	})

	t.Run("member cannot manage project", func(t *testing.T) {
		_, err := authz.Authorize(ctx, project.ID, member.ID, auth.PermProjectDelete)
		require.Error(t, err)
		assert.Equal(t, pkgErrors.KindForbidden, pkgErrors.KindOf(err))
		assert.Contains(t, err.Error(), "Only project owner can delete the project")

		_, err = authz.Authorize(ctx, project.ID, member.ID, auth.PermMemberCreate)
		assert.Contains(t, err.Error(), "Only project owner can add members")
	})

	t.Run("member can work on tasks", func(t *testing.T) {
		got, err := authz.Authorize(ctx, project.ID, member.ID, auth.PermTaskWrite)
		require.NoError(t, err)
		assert.Equal(t, project.ID, got.ID)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, err := authz.CheckProjectAccess(ctx, project.ID, stranger.ID)
		assert.ErrorIs(t, err, pkgErrors.ErrProjectAccess)
	})

	t.Run("removed member loses access on the next check", func(t *testing.T) {
		temp := testutil.CreateUser(t, store, "temp")
		m := testutil.AddMember(t, store, project, temp, "qa")

		ok, err := authz.HasProjectAccess(ctx, project.ID, temp.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, store.Members.Delete(ctx, m.ID))
		ok, err = authz.HasProjectAccess(ctx, project.ID, temp.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
