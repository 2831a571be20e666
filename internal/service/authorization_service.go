package service

import (
	"context"

	"go.uber.org/zap"

	"taskboard/internal/model"
	"taskboard/internal/pkg/auth"
	"taskboard/internal/pkg/logger"
	"taskboard/internal/pkg/metrics"
	"taskboard/internal/repository"
	pkgErrors "taskboard/pkg/errors"
)

// ownerOnlyMessages 仅 owner 拥有的权限及其拒绝提示
var ownerOnlyMessages = map[auth.Permission]string{
	auth.PermProjectUpdate: "Only project owner can update the project",
	auth.PermProjectDelete: "Only project owner can delete the project",
	auth.PermMemberCreate:  "Only project owner can add members",
	auth.PermMemberUpdate:  "Only project owner can update member roles",
	auth.PermMemberDelete:  "Only project owner can remove members",
}

// AuthorizationService 判断用户能否对某个项目执行操作
//
// 每次判断都重新读取项目与成员记录, 不做缓存:
//  1. 项目不存在返回 NotFound, 与 Forbidden 区分
//  2. owner 角色由 projects.owner_id 推导, 成员角色来自 project_members
//  3. 角色 -> 权限 的关系见 internal/pkg/auth
type AuthorizationService interface {
	// HasProjectAccess owner 或成员返回 true; 项目不存在时返回 NotFound 错误
	HasProjectAccess(ctx context.Context, projectID, userID string) (bool, error)
	// IsProjectOwner 项目不存在时返回 NotFound 错误
	IsProjectOwner(ctx context.Context, projectID, userID string) (bool, error)
	// CheckProjectAccess 要求 owner 或成员, 返回项目记录
	CheckProjectAccess(ctx context.Context, projectID, userID string) (*model.Project, error)
	// Authorize 要求指定权限, 返回项目记录
	Authorize(ctx context.Context, projectID, userID string, perm auth.Permission) (*model.Project, error)
}

type authorizationService struct {
	projects repository.ProjectRepository
	members  repository.ProjectMemberRepository
}

func NewAuthorizationService(projects repository.ProjectRepository, members repository.ProjectMemberRepository) AuthorizationService {
	return &authorizationService{
		projects: projects,
		members:  members,
	}
}

func (s *authorizationService) HasProjectAccess(ctx context.Context, projectID, userID string) (bool, error) {
	_, err := s.CheckProjectAccess(ctx, projectID, userID)
	if err == nil {
		return true, nil
	}
	if pkgErrors.Is(err, pkgErrors.KindForbidden) {
		return false, nil
	}
	return false, err
}

func (s *authorizationService) IsProjectOwner(ctx context.Context, projectID, userID string) (bool, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return false, err
	}
	return project.OwnerID == userID, nil
}

func (s *authorizationService) CheckProjectAccess(ctx context.Context, projectID, userID string) (*model.Project, error) {
	return s.Authorize(ctx, projectID, userID, auth.PermProjectRead)
}

func (s *authorizationService) Authorize(ctx context.Context, projectID, userID string, perm auth.Permission) (*model.Project, error) {
	project, err := s.findProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	roles, err := s.rolesOf(ctx, project, userID)
	if err != nil {
		return nil, err
	}

	if !auth.Allow(roles, perm) {
		metrics.AccessDeniedTotal.WithLabelValues(string(perm)).Inc()
		logger.Debug("project access denied",
			zap.String("project_id", projectID),
			zap.String("user_id", userID),
			zap.String("permission", string(perm)))

		if msg, ok := ownerOnlyMessages[perm]; ok {
			return nil, pkgErrors.Forbidden(msg)
		}
		return nil, pkgErrors.ErrProjectAccess
	}
	return project, nil
}

func (s *authorizationService) findProject(ctx context.Context, projectID string) (*model.Project, error) {
	if projectID == "" {
		return nil, pkgErrors.ErrProjectNotFound
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, pkgErrors.ErrProjectNotFound
	}
	return project, nil
}

// rolesOf owner 不会同时是成员, 命中 owner 后不再查询成员表
func (s *authorizationService) rolesOf(ctx context.Context, project *model.Project, userID string) ([]auth.Role, error) {
	if userID == "" {
		return nil, nil
	}
	if project.OwnerID == userID {
		return []auth.Role{auth.RoleOwner}, nil
	}
	member, err := s.members.FindByProjectAndUser(ctx, project.ID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}
	return []auth.Role{auth.Role(member.Role)}, nil
}
