package controller

import (
	"context"

	"tlms_backend/internal/model"
	"tlms_backend/internal/service"
	"tlms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthoringController 课程创作接口，所有操作作用于当前讲师的草稿
type AuthoringController struct {
	Authoring  *service.AuthoringService
	Submission *service.SubmissionService
	Users      *service.UserService
}

func NewAuthoringController(authoring *service.AuthoringService, submission *service.SubmissionService, users *service.UserService) *AuthoringController {
	return &AuthoringController{Authoring: authoring, Submission: submission, Users: users}
}

// @Summary 获取当前草稿
// @Tags 课程创作
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/authoring/draft [get]
func (c *AuthoringController) GetDraft(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	draft := c.Authoring.GetDraft(ctx.Request.Context(), claims.UserID)
	util.Success(ctx, gin.H{
		"draft":    draft,
		"revision": c.Authoring.Revision(ctx.Request.Context(), claims.UserID),
		"validity": c.Authoring.Validity(ctx.Request.Context(), claims.UserID),
	})
}

// @Summary 新建草稿（清空当前草稿）
// @Tags 课程创作
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/authoring/draft [post]
func (c *AuthoringController) StartDraft(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	c.Authoring.StartDraft(ctx.Request.Context(), claims.UserID)
	util.Success(ctx, c.Authoring.GetDraft(ctx.Request.Context(), claims.UserID))
}

// @Summary 丢弃草稿
// @Tags 课程创作
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/authoring/draft [delete]
func (c *AuthoringController) DiscardDraft(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	c.Authoring.Discard(ctx.Request.Context(), claims.UserID)
	util.Success(ctx, nil)
}

// @Summary 更新课程基本信息
// @Tags 课程创作
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseInfoRequest true "课程信息"
// @Success 200 {object} util.Response
// @Router /api/authoring/draft/info [put]
func (c *AuthoringController) UpdateCourseInfo(ctx *gin.Context) {
	var req service.CourseInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	c.Authoring.UpdateCourseInfo(ctx.Request.Context(), claims.UserID, req)
	util.Success(ctx, c.Authoring.Validity(ctx.Request.Context(), claims.UserID))
}

// @Summary 校验草稿
// @Tags 课程创作
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/authoring/draft/validity [get]
func (c *AuthoringController) Validity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	util.Success(ctx, c.Authoring.Validity(ctx.Request.Context(), claims.UserID))
}

// @Summary 新增模块
// @Tags 课程创作
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Router /api/authoring/modules [post]
func (c *AuthoringController) AddModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	m := c.Authoring.AddModule(ctx.Request.Context(), claims.UserID)
	util.Created(ctx, m)
}

// @Summary 更新模块
// @Tags 课程创作
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.DraftModule true "模块"
// @Success 200 {object} util.Response
// @Router /api/authoring/modules [put]
func (c *AuthoringController) UpdateModule(ctx *gin.Context) {
	var m model.DraftModule
	if err := ctx.ShouldBindJSON(&m); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.Authoring.UpdateModule(ctx.Request.Context(), claims.UserID, m); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, m)
}

// @Summary 按位置删除模块
// @Tags 课程创作
// @Produce json
// @Security BearerAuth
// @Param index path int true "模块下标"
// @Success 200 {object} util.Response
// @Router /api/authoring/modules/{index} [delete]
func (c *AuthoringController) DeleteModule(ctx *gin.Context) {
	index, err := util.ParseIndex(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "无效的下标")
		return
	}
	claims := util.GetUserFromContext(ctx)
	c.Authoring.DeleteModule(ctx.Request.Context(), claims.UserID, index)
	util.Success(ctx, nil)
}

// @Summary 新增课时
// @Tags 课程创作
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AddLessonRequest true "课时信息"
// @Success 201 {object} util.Response
// @Router /api/authoring/lessons [post]
func (c *AuthoringController) AddLesson(ctx *gin.Context) {
	var req service.AddLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	l, err := c.Authoring.AddLesson(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Created(ctx, l)
}

type updateLessonRequest struct {
	ModuleID string            `json:"moduleId" binding:"required"`
	Lesson   model.DraftLesson `json:"lesson" binding:"required"`
}

// @Summary 更新课时（含内容类型切换）
// @Tags 课程创作
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body updateLessonRequest true "课时"
// @Success 200 {object} util.Response
// @Router /api/authoring/lessons [put]
func (c *AuthoringController) UpdateLesson(ctx *gin.Context) {
	var req updateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.Authoring.UpdateLesson(ctx.Request.Context(), claims.UserID, req.ModuleID, req.Lesson); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

type deleteLessonRequest struct {
	ModuleID string `json:"moduleId" binding:"required"`
	Index    int    `json:"index"`
}

// @Summary 按位置删除课时
// @Tags 课程创作
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body deleteLessonRequest true "删除参数"
// @Success 200 {object} util.Response
// @Router /api/authoring/lessons/delete [post]
func (c *AuthoringController) DeleteLesson(ctx *gin.Context) {
	var req deleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	c.Authoring.DeleteLesson(ctx.Request.Context(), claims.UserID, req.ModuleID, req.Index)
	util.Success(ctx, nil)
}

type moveLessonRequest struct {
	ModuleID string `json:"moduleId" binding:"required"`
	From     int    `json:"from"`
	To       int    `json:"to"`
}

// @Summary 调整课时顺序
// @Tags 课程创作
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body moveLessonRequest true "移动参数"
// @Success 200 {object} util.Response
// @Router /api/authoring/lessons/move [post]
func (c *AuthoringController) MoveLesson(ctx *gin.Context) {
	var req moveLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	c.Authoring.MoveLesson(ctx.Request.Context(), claims.UserID, req.ModuleID, req.From, req.To)
	util.Success(ctx, nil)
}

// @Summary 向测验课时新增题目
// @Tags 课程创作
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionRequest true "题目"
// @Success 201 {object} util.Response
// @Router /api/authoring/questions [post]
func (c *AuthoringController) AddQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	q, err := c.Authoring.AddQuestionToLesson(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Created(ctx, q)
}

// @Summary 更新题目
// @Tags 课程创作
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionRequest true "题目"
// @Success 200 {object} util.Response
// @Router /api/authoring/questions [put]
func (c *AuthoringController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.Authoring.UpdateQuestionInLesson(ctx.Request.Context(), claims.UserID, req); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

type deleteQuestionRequest struct {
	ModuleID string `json:"moduleId" binding:"required"`
	LessonID string `json:"lessonId" binding:"required"`
	Index    int    `json:"index"`
}

// @Summary 按位置删除题目
// @Tags 课程创作
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body deleteQuestionRequest true "删除参数"
// @Success 200 {object} util.Response
// @Router /api/authoring/questions/delete [post]
func (c *AuthoringController) DeleteQuestion(ctx *gin.Context) {
	var req deleteQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	c.Authoring.DeleteQuestionFromLesson(ctx.Request.Context(), claims.UserID, req.ModuleID, req.LessonID, req.Index)
	util.Success(ctx, nil)
}

type toggleAnswerRequest struct {
	ModuleID    string `json:"moduleId" binding:"required"`
	LessonID    string `json:"lessonId" binding:"required"`
	QuestionID  string `json:"questionId" binding:"required"`
	OptionIndex int    `json:"optionIndex"`
}

// @Summary 切换题目正确选项
// @Tags 课程创作
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body toggleAnswerRequest true "选项参数"
// @Success 200 {object} util.Response
// @Router /api/authoring/questions/answer [post]
func (c *AuthoringController) ToggleAnswer(ctx *gin.Context) {
	var req toggleAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.Authoring.ToggleCorrectAnswer(ctx.Request.Context(), claims.UserID, req.ModuleID, req.LessonID, req.QuestionID, req.OptionIndex); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 保存草稿为课程
// @Tags 课程创作
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Router /api/authoring/save [post]
func (c *AuthoringController) SaveDraft(ctx *gin.Context) {
	c.persist(ctx, c.Submission.SaveDraft)
}

// @Summary 提交课程审核
// @Tags 课程创作
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response
// @Router /api/authoring/submit [post]
func (c *AuthoringController) SubmitForReview(ctx *gin.Context) {
	c.persist(ctx, c.Submission.SubmitForReview)
}

func (c *AuthoringController) persist(ctx *gin.Context, fn func(ctx context.Context, educator *model.User) (uint, error)) {
	claims := util.GetUserFromContext(ctx)
	educator, err := c.Users.GetProfile(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	courseID, err := fn(ctx.Request.Context(), educator)
	if err != nil {
		switch err {
		case util.ErrEducatorNotApproved, util.ErrPermissionDenied:
			util.Forbidden(ctx)
		case util.ErrCourseInfoIncomplete, util.ErrCourseNotSubmittable, util.ErrInvalidQuiz:
			util.Error(ctx, 422, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"courseId": courseID})
}
