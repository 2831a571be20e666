package handler

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/dto"
	"taskboard/internal/service"
	"taskboard/pkg/utils"
)

type MemberHandler struct {
	memberService service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// Add 添加成员
// @Summary 添加项目成员(仅 owner)
// @Tags Member
// @Accept json
// @Produce json
// @Param id path string true "项目ID"
// @Param request body dto.MemberAddRequest true "成员"
// @Success 201 {object} utils.Response{data=dto.MemberResponse}
// @Failure 409 {object} utils.Response
// @Router /api/projects/{id}/members [post]
func (h *MemberHandler) Add(c *gin.Context) {
	var req dto.MemberAddRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.Add(c.Request.Context(), c.Param("id"), currentUserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Created(c, member)
}

// List 成员列表
// @Summary 项目成员列表
// @Tags Member
// @Produce json
// @Param id path string true "项目ID"
// @Success 200 {object} utils.Response{data=[]dto.MemberResponse}
// @Router /api/projects/{id}/members [get]
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, members)
}

// UpdateRole 更新角色
// @Summary 更新成员角色(仅 owner)
// @Tags Member
// @Accept json
// @Produce json
// @Param id path string true "成员ID"
// @Param request body dto.MemberUpdateRoleRequest true "角色"
// @Success 200 {object} utils.Response{data=dto.MemberResponse}
// @Router /api/members/{id} [put]
func (h *MemberHandler) UpdateRole(c *gin.Context) {
	var req dto.MemberUpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.UpdateRole(c.Request.Context(), c.Param("id"), currentUserID(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, member)
}

// Remove 移除成员
// @Summary 移除项目成员(仅 owner)
// @Tags Member
// @Produce json
// @Param id path string true "成员ID"
// @Success 200 {object} utils.Response
// @Router /api/members/{id} [delete]
func (h *MemberHandler) Remove(c *gin.Context) {
	if err := h.memberService.Remove(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, nil)
}
