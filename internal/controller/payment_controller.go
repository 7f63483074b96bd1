package controller

import (
	"tlms_backend/internal/service"
	"tlms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Payments *service.PaymentService
}

func NewPaymentController(payments *service.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

type createOrderRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
}

// @Summary 创建支付订单
// @Tags 支付
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createOrderRequest true "订单参数"
// @Success 201 {object} util.Response
// @Router /api/payments/orders [post]
func (c *PaymentController) CreateOrder(ctx *gin.Context) {
	var req createOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	order, err := c.Payments.CreateOrder(ctx.Request.Context(), claims.UserID, req.CourseID)
	if err != nil {
		switch err {
		case util.ErrCourseNotFound:
			util.NotFound(ctx)
		case util.ErrAlreadyEnrolled:
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, order)
}

type verifyPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// @Summary 校验支付结果
// @Tags 支付
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body verifyPaymentRequest true "支付回执"
// @Success 200 {object} util.Response
// @Router /api/payments/verify [post]
func (c *PaymentController) VerifyPayment(ctx *gin.Context) {
	var req verifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	order, err := c.Payments.VerifyPayment(req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		if err == util.ErrPaymentNotVerified {
			util.Error(ctx, 400, err.Error())
			return
		}
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, order)
}
