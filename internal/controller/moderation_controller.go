package controller

import (
	"strconv"

	"tlms_backend/internal/service"
	"tlms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ModerationController 管理端审核接口
type ModerationController struct {
	Moderation *service.ModerationService
	Reviews    *service.ReviewService
	Users      *service.UserService
}

func NewModerationController(moderation *service.ModerationService, reviews *service.ReviewService, users *service.UserService) *ModerationController {
	return &ModerationController{Moderation: moderation, Reviews: reviews, Users: users}
}

func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// @Summary 待审核讲师列表
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/educators/pending [get]
func (c *ModerationController) PendingEducators(ctx *gin.Context) {
	page, limit := pagination(ctx)

	users, total, err := c.Moderation.PendingEducators(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// @Summary 批准讲师
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/admin/educators/{id}/approve [post]
func (c *ModerationController) ApproveEducator(ctx *gin.Context) {
	if err := c.Moderation.ApproveEducator(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 拒绝讲师
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/admin/educators/{id}/reject [post]
func (c *ModerationController) RejectEducator(ctx *gin.Context) {
	if err := c.Moderation.RejectEducator(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 待审核课程列表
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/courses/pending [get]
func (c *ModerationController) PendingCourses(ctx *gin.Context) {
	page, limit := pagination(ctx)

	courses, total, err := c.Moderation.PendingCourses(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// @Summary 通过课程审核
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id}/approve [post]
func (c *ModerationController) ApproveCourse(ctx *gin.Context) {
	if err := c.Moderation.ApproveCourse(util.MustParseUint(ctx.Param("id"))); err != nil {
		if err == util.ErrInvalidStatusTransition {
			util.Error(ctx, 409, err.Error())
			return
		}
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

// @Summary 驳回课程审核
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param body body reasonRequest false "驳回原因"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id}/reject [post]
func (c *ModerationController) RejectCourse(ctx *gin.Context) {
	var req reasonRequest
	_ = ctx.ShouldBindJSON(&req)

	if err := c.Moderation.RejectCourse(util.MustParseUint(ctx.Param("id")), req.Reason); err != nil {
		if err == util.ErrInvalidStatusTransition {
			util.Error(ctx, 409, err.Error())
			return
		}
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 下架已发布课程
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param body body reasonRequest true "下架原因（必填）"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id}/remove [post]
func (c *ModerationController) RemoveCourse(ctx *gin.Context) {
	var req reasonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Moderation.RemoveCourse(util.MustParseUint(ctx.Param("id")), req.Reason); err != nil {
		switch err {
		case util.ErrRemovalReasonRequired:
			util.BadRequest(ctx, err.Error())
		case util.ErrInvalidStatusTransition:
			util.Error(ctx, 409, err.Error())
		case util.ErrCourseNotFound:
			util.NotFound(ctx)
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, nil)
}

type reviewVisibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// @Summary 设置评价可见性
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "评价ID"
// @Param body body reviewVisibilityRequest true "可见性"
// @Success 200 {object} util.Response
// @Router /api/admin/reviews/{id}/visibility [put]
func (c *ModerationController) SetReviewVisibility(ctx *gin.Context) {
	var req reviewVisibilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Reviews.SetVisibility(util.MustParseUint(ctx.Param("id")), *req.Visible); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 用户列表
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param role query string false "角色过滤"
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *ModerationController) ListUsers(ctx *gin.Context) {
	page, limit := pagination(ctx)

	users, total, err := c.Users.ListUsers(ctx.Query("role"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}
