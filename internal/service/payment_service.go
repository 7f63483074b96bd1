package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"tlms_backend/internal/config"
	"tlms_backend/internal/model"
	"tlms_backend/internal/repository"
	"tlms_backend/internal/util"

	"github.com/go-resty/resty/v2"
)

// PaymentService 对接 Razorpay 风格的支付网关：
// 服务端下单，客户端完成支付后回传 (orderId, paymentId, signature) 验签。
type PaymentService struct {
	cfg     *config.PaymentConfig
	Orders  *repository.PaymentRepository
	Courses *repository.CourseRepository
	client  *resty.Client
}

func NewPaymentService(cfg *config.PaymentConfig, orders *repository.PaymentRepository, courses *repository.CourseRepository) *PaymentService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.KeyID, cfg.KeySecret)
	return &PaymentService{cfg: cfg, Orders: orders, Courses: courses, client: client}
}

type gatewayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateOrder 为付费课程创建网关订单，金额以课程当前价格为准
func (s *PaymentService) CreateOrder(ctx context.Context, userID, courseID uint) (*model.PaymentOrder, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil || course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotFound
	}
	if course.Price <= 0 {
		return nil, fmt.Errorf("course %d is free, no payment order needed", courseID)
	}

	currency := s.cfg.Currency
	if currency == "" {
		currency = "INR"
	}

	var gw gatewayOrderResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"amount":   int64(course.Price * 100), // 网关按最小货币单位计
			"currency": currency,
			"receipt":  fmt.Sprintf("course_%d_user_%d", courseID, userID),
		}).
		SetResult(&gw).
		Post("/v1/orders")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("payment gateway error: %s", resp.Status())
	}

	order := &model.PaymentOrder{
		UserID:         userID,
		CourseID:       courseID,
		Amount:         course.Price,
		Currency:       currency,
		GatewayOrderID: gw.ID,
		Status:         model.PaymentCreated,
	}
	if err := s.Orders.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// VerifyPayment 校验网关签名 HMAC-SHA256(orderId|paymentId, keySecret)。
// 验签失败把订单标记为 failed 并返回错误；成功则标记 paid。
func (s *PaymentService) VerifyPayment(gatewayOrderID, gatewayPaymentID, signature string) (*model.PaymentOrder, error) {
	order, err := s.Orders.FindByGatewayOrderID(gatewayOrderID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	if !VerifySignature(gatewayOrderID, gatewayPaymentID, signature, s.cfg.KeySecret) {
		order.Status = model.PaymentFailed
		_ = s.Orders.Update(order)
		return nil, util.ErrPaymentNotVerified
	}

	order.GatewayPaymentID = gatewayPaymentID
	order.Status = model.PaymentPaid
	if err := s.Orders.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// VerifySignature 网关签名校验，常量时间比较
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
