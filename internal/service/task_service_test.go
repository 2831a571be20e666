package service_test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/dto"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/testutil"
	pkgErrors "taskboard/pkg/errors"
)

type taskFixture struct {
	*services
	owner    *model.User
	member   *model.User
	stranger *model.User
	project  *model.Project
	bug      *model.Label
	urgent   *model.Label
}

func newTaskFixture(t *testing.T) *taskFixture {
	s := newServices(t)
	f := &taskFixture{services: s}
	f.owner = testutil.CreateUser(t, s.store, "owner")
	f.member = testutil.CreateUser(t, s.store, "member")
	f.stranger = testutil.CreateUser(t, s.store, "stranger")
	f.project = testutil.CreateProject(t, s.store, f.owner, "Launch")
	testutil.AddMember(t, s.store, f.project, f.member, "developer")
	f.bug = testutil.CreateLabel(t, s.store, "Bug", "#EF4444")
	f.urgent = testutil.CreateLabel(t, s.store, "Urgent", "#F59E0B")
	return f
}

func labelNames(task *dto.TaskResponse) []string {
	return lo.Map(task.Labels, func(l *dto.LabelResponse, _ int) string { return l.Name })
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	task, err := f.tasks.Create(ctx, f.member.ID, &dto.TaskCreateRequest{
		ProjectID:  f.project.ID,
		Title:      "  Fix login  ",
		AssigneeID: &f.member.ID,
		DueDate:    strPtr("2025-02-15"),
		LabelIDs:   []string{f.bug.ID, f.urgent.ID, f.bug.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Fix login", task.Title)
	assert.Equal(t, "Todo", task.Status)
	assert.Equal(t, "Medium", task.Priority)
	assert.Equal(t, "member", task.Assignee.Username)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2025-02-15", *task.DueDate)
	assert.ElementsMatch(t, []string{"Bug", "Urgent"}, labelNames(task))

	cases := []struct {
		name    string
		userID  string
		req     dto.TaskCreateRequest
		kind    pkgErrors.Kind
		message string
	}{
		{"missing project", f.owner.ID, dto.TaskCreateRequest{Title: "Valid"}, pkgErrors.KindValidation, "Project ID is required"},
		{"unknown project", f.owner.ID, dto.TaskCreateRequest{ProjectID: "missing", Title: "Valid"}, pkgErrors.KindNotFound, "Project not found"},
		{"stranger", f.stranger.ID, dto.TaskCreateRequest{ProjectID: f.project.ID, Title: "Valid"}, pkgErrors.KindForbidden, "You do not have access to this project"},
		{"short title", f.owner.ID, dto.TaskCreateRequest{ProjectID: f.project.ID, Title: " ab "}, pkgErrors.KindValidation, "Task title must be at least 3 characters long"},
		{"bad status", f.owner.ID, dto.TaskCreateRequest{ProjectID: f.project.ID, Title: "Valid", Status: "Blocked"}, pkgErrors.KindValidation, "Invalid status"},
		{"bad priority", f.owner.ID, dto.TaskCreateRequest{ProjectID: f.project.ID, Title: "Valid", Priority: "Critical"}, pkgErrors.KindValidation, "Invalid priority"},
		{"unknown assignee", f.owner.ID, dto.TaskCreateRequest{ProjectID: f.project.ID, Title: "Valid", AssigneeID: strPtr("ghost")}, pkgErrors.KindNotFound, "Assignee not found"},
		{"unknown label", f.owner.ID, dto.TaskCreateRequest{ProjectID: f.project.ID, Title: "Valid", LabelIDs: []string{"ghost"}}, pkgErrors.KindNotFound, "Label not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.tasks.Create(ctx, tc.userID, &tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.kind, pkgErrors.KindOf(err))
			assert.Equal(t, tc.message, messageOf(t, err))
		})
	}

	// 失败的创建不留下任务
	tasks, err := f.tasks.ListByProject(ctx, f.project.ID, f.owner.ID, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestUpdateTaskLabels(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	task, err := f.tasks.Create(ctx, f.owner.ID, &dto.TaskCreateRequest{
		ProjectID: f.project.ID,
		Title:     "Fix login",
		LabelIDs:  []string{f.bug.ID},
	})
	require.NoError(t, err)

	// label_ids 缺省: 标签不变
	updated, err := f.tasks.Update(ctx, task.ID, f.member.ID, &dto.TaskUpdateRequest{Status: strPtr("In Progress")})
	require.NoError(t, err)
	assert.Equal(t, "In Progress", updated.Status)
	assert.Equal(t, []string{"Bug"}, labelNames(updated))

	// 整体替换
	updated, err = f.tasks.Update(ctx, task.ID, f.member.ID, &dto.TaskUpdateRequest{LabelIDs: &[]string{f.urgent.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Urgent"}, labelNames(updated))

	// 空数组清空全部标签
	updated, err = f.tasks.Update(ctx, task.ID, f.member.ID, &dto.TaskUpdateRequest{LabelIDs: &[]string{}})
	require.NoError(t, err)
	assert.Empty(t, updated.Labels)

	// 标签不存在时整个更新不生效
	_, err = f.tasks.Update(ctx, task.ID, f.member.ID, &dto.TaskUpdateRequest{
		Title:    strPtr("Renamed"),
		LabelIDs: &[]string{"ghost"},
	})
	assert.ErrorIs(t, err, pkgErrors.ErrLabelNotFound)
	got, err := f.tasks.Get(ctx, task.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fix login", got.Title)
}

func TestUpdateTaskFields(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	task, err := f.tasks.Create(ctx, f.owner.ID, &dto.TaskCreateRequest{
		ProjectID:   f.project.ID,
		Title:       "Fix login",
		Description: strPtr("Users cannot sign in"),
		AssigneeID:  &f.member.ID,
	})
	require.NoError(t, err)

	updated, err := f.tasks.Update(ctx, task.ID, f.owner.ID, &dto.TaskUpdateRequest{
		Priority:    strPtr("High"),
		Description: dto.Null[string](),
		AssigneeID:  dto.Null[string](),
	})
	require.NoError(t, err)
	assert.Equal(t, "High", updated.Priority)
	assert.Equal(t, "Fix login", updated.Title)
	assert.Nil(t, updated.Description)
	assert.Nil(t, updated.AssigneeID)

	// 空串视为未提供
	updated, err = f.tasks.Update(ctx, task.ID, f.owner.ID, &dto.TaskUpdateRequest{
		Title:    strPtr(""),
		Status:   strPtr(""),
		Priority: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Fix login", updated.Title)
	assert.Equal(t, "Todo", updated.Status)
	assert.Equal(t, "High", updated.Priority)

	_, err = f.tasks.Update(ctx, task.ID, f.owner.ID, &dto.TaskUpdateRequest{Title: strPtr("  ")})
	assert.Equal(t, "Task title must be at least 3 characters long", messageOf(t, err))

	_, err = f.tasks.Update(ctx, task.ID, f.owner.ID, &dto.TaskUpdateRequest{Status: strPtr("Blocked")})
	assert.Equal(t, "Invalid status", messageOf(t, err))

	_, err = f.tasks.Update(ctx, task.ID, f.stranger.ID, &dto.TaskUpdateRequest{Title: strPtr("Mine now")})
	assert.ErrorIs(t, err, pkgErrors.ErrProjectAccess)

	_, err = f.tasks.Update(ctx, "missing", f.owner.ID, &dto.TaskUpdateRequest{})
	assert.ErrorIs(t, err, pkgErrors.ErrTaskNotFound)
}

func TestBoardAndAssignments(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	for _, tc := range []struct{ title, status string }{
		{"Plan", "Todo"},
		{"Build", "In Progress"},
		{"Ship", "Done"},
		{"Celebrate", "Todo"},
	} {
		_, err := f.tasks.Create(ctx, f.owner.ID, &dto.TaskCreateRequest{
			ProjectID:  f.project.ID,
			Title:      tc.title,
			Status:     tc.status,
			AssigneeID: &f.member.ID,
		})
		require.NoError(t, err)
	}

	board, err := f.tasks.Board(ctx, f.project.ID, f.member.ID)
	require.NoError(t, err)
	assert.Len(t, board.Todo, 2)
	assert.Len(t, board.InProgress, 1)
	assert.Len(t, board.Done, 1)

	_, err = f.tasks.Board(ctx, f.project.ID, f.stranger.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrProjectAccess)

	mine, err := f.tasks.ListByAssignee(ctx, f.member.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 4)
	assert.Equal(t, "Launch", mine[0].Project.Name)

	// 移除成员后仍能看到指派给自己的任务
	member, err := f.store.Members.FindByProjectAndUser(ctx, f.project.ID, f.member.ID)
	require.NoError(t, err)
	require.NoError(t, f.store.Members.Delete(ctx, member.ID))
	mine, err = f.tasks.ListByAssignee(ctx, f.member.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 4)
}

func TestTaskLabelOperations(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	task, err := f.tasks.Create(ctx, f.owner.ID, &dto.TaskCreateRequest{ProjectID: f.project.ID, Title: "Fix login"})
	require.NoError(t, err)

	updated, err := f.tasks.AddLabel(ctx, task.ID, f.member.ID, &dto.TaskLabelRequest{LabelID: f.bug.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bug"}, labelNames(updated))

	_, err = f.tasks.AddLabel(ctx, task.ID, f.member.ID, &dto.TaskLabelRequest{LabelID: f.bug.ID})
	assert.ErrorIs(t, err, pkgErrors.ErrLabelAttached)

	_, err = f.tasks.AddLabel(ctx, task.ID, f.member.ID, &dto.TaskLabelRequest{LabelID: "ghost"})
	assert.ErrorIs(t, err, pkgErrors.ErrLabelNotFound)

	updated, err = f.tasks.RemoveLabel(ctx, task.ID, f.bug.ID, f.member.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Labels)

	_, err = f.tasks.RemoveLabel(ctx, task.ID, f.bug.ID, f.member.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrLabelDetached)

	_, err = f.tasks.AddLabel(ctx, task.ID, f.stranger.ID, &dto.TaskLabelRequest{LabelID: f.bug.ID})
	assert.ErrorIs(t, err, pkgErrors.ErrProjectAccess)
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	task, err := f.tasks.Create(ctx, f.owner.ID, &dto.TaskCreateRequest{
		ProjectID: f.project.ID,
		Title:     "Fix login",
		LabelIDs:  []string{f.bug.ID},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.tasks.Delete(ctx, task.ID, f.stranger.ID), pkgErrors.ErrProjectAccess)
	require.NoError(t, f.tasks.Delete(ctx, task.ID, f.member.ID))

	_, err = f.tasks.Get(ctx, task.ID, f.owner.ID)
	assert.ErrorIs(t, err, pkgErrors.ErrTaskNotFound)

	attached, err := f.store.TaskLabels.Exists(ctx, task.ID, f.bug.ID)
	require.NoError(t, err)
	assert.False(t, attached)
}
