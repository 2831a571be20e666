package service_test

import (
	"testing"

	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

type services struct {
	store    *repository.Store
	projects service.ProjectService
	members  service.MemberService
	tasks    service.TaskService
	labels   service.LabelService
}

func newServices(t *testing.T) *services {
	t.Helper()
	store := testutil.NewStore(t)
	authz := service.NewAuthorizationService(store.Projects, store.Members)
	return &services{
		store:    store,
		projects: service.NewProjectService(store, authz),
		members:  service.NewMemberService(store, authz),
		tasks:    service.NewTaskService(store, authz),
		labels:   service.NewLabelService(store),
	}
}

func strPtr(s string) *string { return &s }
