package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/dto"
	"taskboard/internal/testutil"
	pkgErrors "taskboard/pkg/errors"
)

func TestCreateLabel(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	label, err := s.labels.Create(ctx, &dto.LabelCreateRequest{Name: "Bug", Color: "#ef4444"})
	require.NoError(t, err)
	assert.Equal(t, "#EF4444", label.Color)

	stored, err := s.store.Labels.FindByID(ctx, label.ID)
	require.NoError(t, err)
	assert.Equal(t, "#EF4444", stored.Color)

	cases := []struct {
		name    string
		req     dto.LabelCreateRequest
		kind    pkgErrors.Kind
		message string
	}{
		{"duplicate", dto.LabelCreateRequest{Name: "Bug", Color: "#000000"}, pkgErrors.KindConflict, "A label with this name already exists"},
		{"short name", dto.LabelCreateRequest{Name: " B ", Color: "#000000"}, pkgErrors.KindValidation, "Label name must be at least 2 characters long"},
		{"bad color", dto.LabelCreateRequest{Name: "Feature", Color: "green"}, pkgErrors.KindValidation, "Invalid color format. Use hex format like #FF5733"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.labels.Create(ctx, &tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.kind, pkgErrors.KindOf(err))
			assert.Equal(t, tc.message, messageOf(t, err))
		})
	}

	// 名称区分大小写
	_, err = s.labels.Create(ctx, &dto.LabelCreateRequest{Name: "bug", Color: "#000000"})
	assert.NoError(t, err)
}

func TestUpdateLabel(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	bug := testutil.CreateLabel(t, s.store, "Bug", "#EF4444")
	testutil.CreateLabel(t, s.store, "Feature", "#10B981")

	// 保留自身名称不算重名
	updated, err := s.labels.Update(ctx, bug.ID, &dto.LabelUpdateRequest{Name: strPtr("Bug"), Color: strPtr("#abcdef")})
	require.NoError(t, err)
	assert.Equal(t, "Bug", updated.Name)
	assert.Equal(t, "#ABCDEF", updated.Color)

	_, err = s.labels.Update(ctx, bug.ID, &dto.LabelUpdateRequest{Name: strPtr("Feature")})
	assert.ErrorIs(t, err, pkgErrors.ErrLabelExists)

	_, err = s.labels.Update(ctx, "missing", &dto.LabelUpdateRequest{Name: strPtr("Other")})
	assert.ErrorIs(t, err, pkgErrors.ErrLabelNotFound)

	got, err := s.labels.Get(ctx, bug.ID)
	require.NoError(t, err)
	assert.Equal(t, "#ABCDEF", got.Color)
	assert.Equal(t, got.UpdatedAt, updated.UpdatedAt)

	// 空串视为未提供
	updated, err = s.labels.Update(ctx, bug.ID, &dto.LabelUpdateRequest{Name: strPtr(""), Color: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Bug", updated.Name)
	assert.Equal(t, "#ABCDEF", updated.Color)
}

func TestDeleteLabelDetachesTasks(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	owner := testutil.CreateUser(t, s.store, "owner")
	project := testutil.CreateProject(t, s.store, owner, "Launch")
	bug := testutil.CreateLabel(t, s.store, "Bug", "#EF4444")

	task, err := s.tasks.Create(ctx, owner.ID, &dto.TaskCreateRequest{ProjectID: project.ID, Title: "Fix login", LabelIDs: []string{bug.ID}})
	require.NoError(t, err)

	require.NoError(t, s.labels.Delete(ctx, bug.ID))
	assert.ErrorIs(t, s.labels.Delete(ctx, bug.ID), pkgErrors.ErrLabelNotFound)

	got, err := s.tasks.Get(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Labels)

	labels, err := s.labels.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, labels)
}
