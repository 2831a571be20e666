package handler

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/dto"
	"taskboard/internal/service"
	"taskboard/pkg/utils"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create 创建项目
// @Summary 创建项目
// @Description 当前用户成为项目 owner
// @Tags Project
// @Accept json
// @Produce json
// @Param request body dto.ProjectCreateRequest true "创建项目请求"
// @Success 201 {object} utils.Response{data=dto.ProjectResponse}
// @Failure 400 {object} utils.Response
// @Router /api/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.ProjectCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, project)
}

// List 项目列表
// @Summary 当前用户拥有或参与的项目
// @Tags Project
// @Produce json
// @Success 200 {object} utils.Response{data=[]dto.ProjectResponse}
// @Router /api/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, projects)
}

// Get 项目详情
// @Summary 获取项目详情
// @Tags Project
// @Produce json
// @Param id path string true "项目ID"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectService.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, project)
}

// Update 更新项目
// @Summary 更新项目(仅 owner)
// @Description 未出现的字段保持不变, 显式 null 清空可空字段
// @Tags Project
// @Accept json
// @Produce json
// @Param id path string true "项目ID"
// @Param request body dto.ProjectUpdateRequest true "更新项目请求"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Failure 403 {object} utils.Response
// @Router /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.ProjectUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), c.Param("id"), currentUserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, project)
}

// Delete 删除项目
// @Summary 删除项目(仅 owner)
// @Tags Project
// @Produce json
// @Param id path string true "项目ID"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectService.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, nil)
}

// Stats 任务统计
// @Summary 项目任务状态统计
// @Tags Project
// @Produce json
// @Param id path string true "项目ID"
// @Success 200 {object} utils.Response{data=dto.ProjectStats}
// @Router /api/projects/{id}/stats [get]
func (h *ProjectHandler) Stats(c *gin.Context) {
	stats, err := h.projectService.Stats(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, stats)
}
