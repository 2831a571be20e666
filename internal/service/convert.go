package service

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"taskboard/internal/dto"
	"taskboard/internal/model"
	"taskboard/pkg/constants"
	pkgErrors "taskboard/pkg/errors"
)

const dateLayout = "2006-01-02"

// parseDate 接受 YYYY-MM-DD 或 RFC3339, 空串视为未设置
func parseDate(value string) (*datatypes.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			d := datatypes.Date(t.UTC())
			return &d, nil
		}
	}
	return nil, pkgErrors.Validation("Invalid date format. Use YYYY-MM-DD")
}

func parseDatePtr(value *string) (*datatypes.Date, error) {
	if value == nil {
		return nil, nil
	}
	return parseDate(*value)
}

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dateLayout)
	return &s
}

// trimmedOrNil 去掉空白, 结果为空时返回 nil
func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toMemberResponse(member *model.ProjectMember) *dto.MemberResponse {
	return &dto.MemberResponse{
		ID:        member.ID,
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      member.Role,
		JoinedAt:  member.JoinedAt,
		User:      dto.NewUserInfo(member.User),
	}
}

func toLabelResponse(label *model.Label) *dto.LabelResponse {
	return &dto.LabelResponse{
		ID:        label.ID,
		Name:      label.Name,
		Color:     label.Color,
		CreatedAt: label.CreatedAt,
		UpdatedAt: label.UpdatedAt,
	}
}

func toTaskResponse(task *model.Task) *dto.TaskResponse {
	resp := &dto.TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		AssigneeID:  task.AssigneeID,
		Assignee:    dto.NewUserInfo(task.Assignee),
		DueDate:     formatDate(task.DueDate),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Project != nil {
		resp.Project = &dto.ProjectBrief{ID: task.Project.ID, Name: task.Project.Name}
	}
	resp.Labels = lo.FilterMap(task.TaskLabels, func(tl model.TaskLabel, _ int) (*dto.LabelResponse, bool) {
		if tl.Label == nil {
			return nil, false
		}
		return toLabelResponse(tl.Label), true
	})
	return resp
}

func toTaskResponses(tasks []*model.Task) []*dto.TaskResponse {
	return lo.Map(tasks, func(task *model.Task, _ int) *dto.TaskResponse {
		return toTaskResponse(task)
	})
}

func toProjectResponse(project *model.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		StartDate:   formatDate(project.StartDate),
		EndDate:     formatDate(project.EndDate),
		OwnerID:     project.OwnerID,
		Owner:       dto.NewUserInfo(project.Owner),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
	resp.Members = lo.Map(project.Members, func(m model.ProjectMember, _ int) *dto.MemberResponse {
		return toMemberResponse(&m)
	})
	return resp
}

// statsOf 按状态汇总任务
func statsOf(statuses []string) *dto.ProjectStats {
	counts := lo.CountValues(statuses)
	return &dto.ProjectStats{
		Total:      int64(len(statuses)),
		Todo:       int64(counts[constants.TaskStatusTodo]),
		InProgress: int64(counts[constants.TaskStatusInProgress]),
		Done:       int64(counts[constants.TaskStatusDone]),
	}
}
