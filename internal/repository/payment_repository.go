package repository

import (
	"tlms_backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(order *model.PaymentOrder) error {
	return r.DB.Create(order).Error
}

func (r *PaymentRepository) FindByGatewayOrderID(gatewayOrderID string) (*model.PaymentOrder, error) {
	var o model.PaymentOrder
	err := r.DB.Where("gateway_order_id = ?", gatewayOrderID).First(&o).Error
	return &o, err
}

// FindPaidOrder 查找学员在某课程下已支付成功的订单
func (r *PaymentRepository) FindPaidOrder(userID, courseID uint) (*model.PaymentOrder, error) {
	var o model.PaymentOrder
	err := r.DB.Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, model.PaymentPaid).
		Order("created_at desc").First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PaymentRepository) Update(order *model.PaymentOrder) error {
	return r.DB.Save(order).Error
}

func (r *PaymentRepository) ListByUser(userID uint) ([]model.PaymentOrder, error) {
	var os []model.PaymentOrder
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&os).Error
	return os, err
}
