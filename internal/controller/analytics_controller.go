package controller

import (
	"strconv"

	"tlms_backend/internal/service"
	"tlms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Analytics *service.AnalyticsService
}

func NewAnalyticsController(analytics *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics}
}

func parseWindow(s string) service.TimeWindow {
	switch service.TimeWindow(s) {
	case service.WindowToday, service.WindowWeek, service.WindowMonth, service.WindowYear:
		return service.TimeWindow(s)
	default:
		return service.WindowAll
	}
}

// @Summary 平台数据总览
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param window query string false "时间窗口: today/week/month/year/all"
// @Success 200 {object} util.Response
// @Router /api/admin/analytics/overview [get]
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	stats, err := c.Analytics.Overview(parseWindow(ctx.DefaultQuery("window", "all")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 课程报名排行
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param window query string false "时间窗口"
// @Param top query int false "返回数量，默认 10"
// @Success 200 {object} util.Response
// @Router /api/admin/analytics/ranking [get]
func (c *AnalyticsController) Ranking(ctx *gin.Context) {
	top, _ := strconv.Atoi(ctx.DefaultQuery("top", "10"))
	if top < 1 {
		top = 10
	}

	ranking, err := c.Analytics.Ranking(parseWindow(ctx.DefaultQuery("window", "all")), top)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, ranking)
}
