package service

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"taskboard/internal/dto"
	"taskboard/internal/model"
	"taskboard/internal/pkg/auth"
	"taskboard/internal/pkg/logger"
	"taskboard/internal/pkg/validate"
	"taskboard/internal/repository"
	pkgErrors "taskboard/pkg/errors"
)

var memberMessages = validate.Messages{
	"user_id.required": "User ID is required",
	"role":             "Role must be one of: manager, developer, qa",
}

type MemberService interface {
	// Add 只有 owner 可以添加; owner 本人不能作为成员
	Add(ctx context.Context, projectID, callerID string, req *dto.MemberAddRequest) (*dto.MemberResponse, error)
	List(ctx context.Context, projectID, callerID string) ([]*dto.MemberResponse, error)
	UpdateRole(ctx context.Context, memberID, callerID string, req *dto.MemberUpdateRoleRequest) (*dto.MemberResponse, error)
	Remove(ctx context.Context, memberID, callerID string) error
}

type memberService struct {
	store *repository.Store
	authz AuthorizationService
}

func NewMemberService(store *repository.Store, authz AuthorizationService) MemberService {
	return &memberService{
		store: store,
		authz: authz,
	}
}

func (s *memberService) Add(ctx context.Context, projectID, callerID string, req *dto.MemberAddRequest) (*dto.MemberResponse, error) {
	project, err := s.authz.Authorize(ctx, projectID, callerID, auth.PermMemberCreate)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req, memberMessages); err != nil {
		return nil, err
	}

	user, err := s.store.Users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, pkgErrors.ErrUserNotFound
	}
	if user.ID == project.OwnerID {
		return nil, pkgErrors.ErrOwnerAsMember
	}

	existing, err := s.store.Members.FindByProjectAndUser(ctx, projectID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pkgErrors.ErrMemberExists
	}

	member := &model.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      req.Role,
	}
	if err := s.store.Members.Create(ctx, member); err != nil {
		// 并发添加时由唯一索引兜底
		if pkgErrors.Is(err, pkgErrors.KindConflict) {
			return nil, pkgErrors.ErrMemberExists
		}
		return nil, err
	}
	member.User = user

	logger.Info("project member added",
		zap.String("project_id", projectID),
		zap.String("user_id", req.UserID),
		zap.String("role", req.Role))
	return toMemberResponse(member), nil
}

func (s *memberService) List(ctx context.Context, projectID, callerID string) ([]*dto.MemberResponse, error) {
	if _, err := s.authz.Authorize(ctx, projectID, callerID, auth.PermMemberRead); err != nil {
		return nil, err
	}
	members, err := s.store.Members.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return lo.Map(members, func(m *model.ProjectMember, _ int) *dto.MemberResponse {
		return toMemberResponse(m)
	}), nil
}

func (s *memberService) UpdateRole(ctx context.Context, memberID, callerID string, req *dto.MemberUpdateRoleRequest) (*dto.MemberResponse, error) {
	if err := validate.Struct(req, memberMessages); err != nil {
		return nil, err
	}

	member, err := s.findMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	// 权限按成员所属项目判断
	if _, err := s.authz.Authorize(ctx, member.ProjectID, callerID, auth.PermMemberUpdate); err != nil {
		return nil, err
	}

	if err := s.store.Members.UpdateRole(ctx, member.ID, req.Role); err != nil {
		return nil, err
	}
	member.Role = req.Role
	return toMemberResponse(member), nil
}

func (s *memberService) Remove(ctx context.Context, memberID, callerID string) error {
	member, err := s.findMember(ctx, memberID)
	if err != nil {
		return err
	}
	if _, err := s.authz.Authorize(ctx, member.ProjectID, callerID, auth.PermMemberDelete); err != nil {
		return err
	}

	if err := s.store.Members.Delete(ctx, member.ID); err != nil {
		return err
	}

	logger.Info("project member removed",
		zap.String("project_id", member.ProjectID),
		zap.String("user_id", member.UserID))
	return nil
}

func (s *memberService) findMember(ctx context.Context, memberID string) (*model.ProjectMember, error) {
	member, err := s.store.Members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, pkgErrors.ErrMemberNotFound
	}
	return member, nil
}
