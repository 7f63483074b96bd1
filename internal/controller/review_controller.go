package controller

import (
	"strconv"

	"tlms_backend/internal/service"
	"tlms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews *service.ReviewService
}

func NewReviewController(reviews *service.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

// @Summary 发表课程评价
// @Tags 评价
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param body body service.ReviewRequest true "评价内容"
// @Success 201 {object} util.Response
// @Router /api/courses/{id}/reviews [post]
func (c *ReviewController) AddReview(ctx *gin.Context) {
	var req service.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Param("id"))

	review, err := c.Reviews.AddReview(claims.UserID, courseID, req)
	if err != nil {
		switch err {
		case util.ErrCourseNotFound:
			util.NotFound(ctx)
		case util.ErrPermissionDenied:
			util.Forbidden(ctx)
		case util.ErrAlreadyReviewed:
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, review)
}

// @Summary 课程评价列表
// @Tags 评价
// @Produce json
// @Param id path int true "课程ID"
// @Param minRating query int false "最低评分"
// @Param sort query string false "排序: newest/rating_asc/rating_desc"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/reviews [get]
func (c *ReviewController) ListReviews(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	minRating, _ := strconv.Atoi(ctx.Query("minRating"))

	filter := service.ReviewFilter{
		VisibleOnly: true,
		MinRating:   minRating,
		Sort:        ctx.DefaultQuery("sort", "newest"),
		Page:        page,
		Limit:       limit,
	}

	reviews, total, err := c.Reviews.ListReviews(courseID, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  reviews,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
