package handler

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/dto"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	pkgErrors "taskboard/pkg/errors"
	"taskboard/pkg/utils"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create 创建任务
// @Summary 创建任务
// @Description label_ids 与任务在同一事务内写入
// @Tags Task
// @Accept json
// @Produce json
// @Param request body dto.TaskCreateRequest true "任务"
// @Success 201 {object} utils.Response{data=dto.TaskResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.TaskCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Created(c, task)
}

// List 任务列表
// @Summary 任务列表
// @Description 带 project_id 时按条件过滤项目任务, 否则返回指派给当前用户的任务
// @Tags Task
// @Produce json
// @Param project_id query string false "项目ID"
// @Param status query string false "状态"
// @Param priority query string false "优先级"
// @Param assignee_id query string false "指派人"
// @Param label_id query string false "标签"
// @Success 200 {object} utils.Response{data=[]dto.TaskResponse}
// @Router /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var query dto.TaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.ErrBadRequest, utils.FormatBindError(err))
		return
	}

	var (
		tasks []*dto.TaskResponse
		err   error
	)
	if query.ProjectID == "" {
		tasks, err = h.taskService.ListByAssignee(c.Request.Context(), currentUserID(c))
	} else {
		tasks, err = h.taskService.ListByProject(c.Request.Context(), query.ProjectID, currentUserID(c), repository.TaskFilter{
			Status:     query.Status,
			Priority:   query.Priority,
			AssigneeID: query.AssigneeID,
			LabelID:    query.LabelID,
		})
	}
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, tasks)
}

// Board 看板
// @Summary 按状态分组的项目任务
// @Tags Task
// @Produce json
// @Param project_id query string true "项目ID"
// @Success 200 {object} utils.Response{data=dto.TaskBoard}
// @Router /api/tasks/board [get]
func (h *TaskHandler) Board(c *gin.Context) {
	board, err := h.taskService.Board(c.Request.Context(), c.Query("project_id"), currentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, board)
}

// Get 任务详情
// @Summary 获取任务详情
// @Tags Task
// @Produce json
// @Param id path string true "任务ID"
// @Success 200 {object} utils.Response{data=dto.TaskResponse}
// @Failure 404 {object} utils.Response
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.taskService.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, task)
}

// Update 更新任务
// @Summary 更新任务
// @Description 部分更新; label_ids 出现(包括空数组)时整体替换标签
// @Tags Task
// @Accept json
// @Produce json
// @Param id path string true "任务ID"
// @Param request body dto.TaskUpdateRequest true "任务"
// @Success 200 {object} utils.Response{data=dto.TaskResponse}
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.TaskUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), c.Param("id"), currentUserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, task)
}

// Delete 删除任务
// @Summary 删除任务
// @Tags Task
// @Produce json
// @Param id path string true "任务ID"
// @Success 200 {object} utils.Response
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, nil)
}

// AddLabel 添加标签
// @Summary 给任务添加标签
// @Tags Task
// @Accept json
// @Produce json
// @Param id path string true "任务ID"
// @Param request body dto.TaskLabelRequest true "标签"
// @Success 200 {object} utils.Response{data=dto.TaskResponse}
// @Failure 409 {object} utils.Response
// @Router /api/tasks/{id}/labels [post]
func (h *TaskHandler) AddLabel(c *gin.Context) {
	var req dto.TaskLabelRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.AddLabel(c.Request.Context(), c.Param("id"), currentUserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, task)
}

// RemoveLabel 移除标签
// @Summary 移除任务标签
// @Tags Task
// @Produce json
// @Param id path string true "任务ID"
// @Param labelId path string true "标签ID"
// @Success 200 {object} utils.Response{data=dto.TaskResponse}
// @Router /api/tasks/{id}/labels/{labelId} [delete]
func (h *TaskHandler) RemoveLabel(c *gin.Context) {
	task, err := h.taskService.RemoveLabel(c.Request.Context(), c.Param("id"), c.Param("labelId"), currentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, task)
}
