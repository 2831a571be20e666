package service

import (
	"context"

	"github.com/samber/lo"

	"taskboard/internal/dto"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

type UserService interface {
	// List 全部用户, 按用户名排序, 用于指派与添加成员
	List(ctx context.Context) ([]*dto.UserInfo, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context) ([]*dto.UserInfo, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u *model.User, _ int) *dto.UserInfo {
		return dto.NewUserInfo(u)
	}), nil
}
