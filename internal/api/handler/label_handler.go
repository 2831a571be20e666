package handler

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/dto"
	"taskboard/internal/service"
	"taskboard/pkg/utils"
)

type LabelHandler struct {
	labelService service.LabelService
}

func NewLabelHandler(labelService service.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// Create 创建标签
// @Summary 创建标签
// @Description 颜色统一存为大写
// @Tags Label
// @Accept json
// @Produce json
// @Param request body dto.LabelCreateRequest true "标签"
// @Success 201 {object} utils.Response{data=dto.LabelResponse}
// @Failure 409 {object} utils.Response
// @Router /api/labels [post]
func (h *LabelHandler) Create(c *gin.Context) {
	var req dto.LabelCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	label, err := h.labelService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Created(c, label)
}

// List 标签列表
// @Summary 标签列表
// @Tags Label
// @Produce json
// @Success 200 {object} utils.Response{data=[]dto.LabelResponse}
// @Router /api/labels [get]
func (h *LabelHandler) List(c *gin.Context) {
	labels, err := h.labelService.List(c.Request.Context())
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, labels)
}

// Get 标签详情
// @Summary 获取标签
// @Tags Label
// @Produce json
// @Param id path string true "标签ID"
// @Success 200 {object} utils.Response{data=dto.LabelResponse}
// @Router /api/labels/{id} [get]
func (h *LabelHandler) Get(c *gin.Context) {
	label, err := h.labelService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, label)
}

// Update 更新标签
// @Summary 更新标签
// @Tags Label
// @Accept json
// @Produce json
// @Param id path string true "标签ID"
// @Param request body dto.LabelUpdateRequest true "标签"
// @Success 200 {object} utils.Response{data=dto.LabelResponse}
// @Router /api/labels/{id} [put]
func (h *LabelHandler) Update(c *gin.Context) {
	var req dto.LabelUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	label, err := h.labelService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, label)
}

// Delete 删除标签
// @Summary 删除标签
// @Tags Label
// @Produce json
// @Param id path string true "标签ID"
// @Success 200 {object} utils.Response
// @Router /api/labels/{id} [delete]
func (h *LabelHandler) Delete(c *gin.Context) {
	if err := h.labelService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, nil)
}
