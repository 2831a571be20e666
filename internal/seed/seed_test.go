package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/pkg/crypto"
	"taskboard/internal/repository"
	"taskboard/internal/testutil"
)

func TestRunDefaultFixtures(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	f, err := DefaultFixtures()
	require.NoError(t, err)

	result, err := Run(ctx, store, f)
	require.NoError(t, err)
	assert.Equal(t, &Result{Users: 3, Labels: 3, Projects: 1, Tasks: 4}, result)

	alice, err := store.Users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, alice)
	assert.True(t, crypto.CheckPassword("password123", alice.Password))

	project, err := store.Projects.FindByOwnerAndName(ctx, alice.ID, "Website Redesign")
	require.NoError(t, err)
	require.NotNil(t, project)

	members, err := store.Members.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	tasks, err := store.Tasks.ListByProject(ctx, project.ID, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 4)

	// 再次执行不产生重复数据
	result, err = Run(ctx, store, f)
	require.NoError(t, err)
	assert.Equal(t, &Result{}, result)

	tasks, err = store.Tasks.ListByProject(ctx, project.ID, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
}

func TestRunRejectsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	f, err := Parse([]byte(`
password: password123
users: [alice]
projects:
  - name: Broken
    owner: alice
    tasks:
      - title: Orphan
        status: Todo
        priority: Low
        assignee: ghost
`))
	require.NoError(t, err)

	_, err = Run(ctx, store, f)
	assert.ErrorContains(t, err, `unknown assignee "ghost"`)

	// 项目在同一事务中回滚
	alice, err := store.Users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	project, err := store.Projects.FindByOwnerAndName(ctx, alice.ID, "Broken")
	require.NoError(t, err)
	assert.Nil(t, project)
}

func TestRunRejectsInvalidEnums(t *testing.T) {
	cases := []struct {
		name    string
		project string
		wantErr string
	}{
		{
			name: "member role",
			project: `
  - name: Roles
    owner: alice
    members:
      - user: bob
        role: owner`,
			wantErr: `invalid role "owner" for member "bob"`,
		},
		{
			name: "task status",
			project: `
  - name: Statuses
    owner: alice
    tasks:
      - title: Stuck
        status: Blocked`,
			wantErr: `task "Stuck": invalid status "Blocked"`,
		},
		{
			name: "task priority",
			project: `
  - name: Priorities
    owner: alice
    tasks:
      - title: Panic
        priority: Critical`,
			wantErr: `task "Panic": invalid priority "Critical"`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store := testutil.NewStore(t)

			f, err := Parse([]byte("password: password123\nusers: [alice, bob]\nprojects:" + tc.project + "\n"))
			require.NoError(t, err)

			_, err = Run(ctx, store, f)
			assert.ErrorContains(t, err, tc.wantErr)

			alice, err := store.Users.FindByUsername(ctx, "alice")
			require.NoError(t, err)
			projects, err := store.Projects.ListForUser(ctx, alice.ID)
			require.NoError(t, err)
			assert.Empty(t, projects)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseDate("2025/01/01")
	assert.Error(t, err)
}
