package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	cases := []struct {
		name  string
		roles []Role
		need  Permission
		allow bool
	}{
		{name: "owner deletes project", roles: []Role{RoleOwner}, need: PermProjectDelete, allow: true},
		{name: "owner manages members", roles: []Role{RoleOwner}, need: PermMemberCreate, allow: true},
		{name: "developer reads project", roles: []Role{RoleDeveloper}, need: PermProjectRead, allow: true},
		{name: "developer writes tasks", roles: []Role{RoleDeveloper}, need: PermTaskWrite, allow: true},
		{name: "qa reads members", roles: []Role{RoleQA}, need: PermMemberRead, allow: true},
		{name: "manager cannot update project", roles: []Role{RoleManager}, need: PermProjectUpdate, allow: false},
		{name: "manager cannot add members", roles: []Role{RoleManager}, need: PermMemberCreate, allow: false},
		{name: "qa cannot delete project", roles: []Role{RoleQA}, need: PermProjectDelete, allow: false},
		{name: "no roles", roles: nil, need: PermProjectRead, allow: false},
		{name: "unknown role", roles: []Role{"guest"}, need: PermTaskRead, allow: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allow, Allow(tc.roles, tc.need))
		})
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, match("*", "project:read"))
	assert.True(t, match("task:*", "task:write"))
	assert.True(t, match("task:*", "task:comment:create"))
	assert.False(t, match("task:*", "task"))
	assert.False(t, match("task:read", "task:write"))
	assert.False(t, match("project:read", "project:read:extra"))
}
