package auth

import (
	"strings"

	"taskboard/pkg/constants"
)

// Role 项目内角色. owner 不是成员角色, 由 project.owner_id 推导
type Role string

const (
	RoleOwner     Role = "owner"
	RoleManager   Role = constants.MemberRoleManager
	RoleDeveloper Role = constants.MemberRoleDeveloper
	RoleQA        Role = constants.MemberRoleQA
)

// Permission 项目内权限
type Permission string

const (
	PermProjectRead   Permission = "project:read"
	PermProjectUpdate Permission = "project:update"
	PermProjectDelete Permission = "project:delete"

	PermMemberRead   Permission = "member:read"
	PermMemberCreate Permission = "member:create"
	PermMemberUpdate Permission = "member:update"
	PermMemberDelete Permission = "member:delete"

	PermTaskRead  Permission = "task:read"
	PermTaskWrite Permission = "task:write"
)

// memberPermissions 成员角色目前只作展示, 三种角色权限相同
var memberPermissions = []Permission{
	PermProjectRead,
	PermMemberRead,
	"task:*",
}

// RolePermissions 每个角色拥有的权限集合
var RolePermissions = map[Role][]Permission{
	RoleOwner:     {"*"},
	RoleManager:   memberPermissions,
	RoleDeveloper: memberPermissions,
	RoleQA:        memberPermissions,
}

// Allow 判断一组角色是否包含所需权限，支持通配符
func Allow(roles []Role, need Permission) bool {
	for _, role := range roles {
		for _, have := range RolePermissions[role] {
			if match(have, need) {
				return true
			}
		}
	}
	return false
}

// match 逐段比较, "*" 段匹配剩余全部段
func match(have, need Permission) bool {
	if have == "*" || have == need {
		return true
	}

	haveParts := strings.Split(string(have), ":")
	needParts := strings.Split(string(need), ":")

	for i, part := range haveParts {
		if part == "*" {
			return i < len(needParts)
		}
		if i >= len(needParts) || part != needParts[i] {
			return false
		}
	}
	return len(haveParts) == len(needParts)
}
