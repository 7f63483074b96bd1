package model

type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "created"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// swagger:model PaymentOrder
type PaymentOrder struct {
	BaseModel
	UserID   uint    `gorm:"index;not null" json:"userId"`
	CourseID uint    `gorm:"index;not null" json:"courseId"`
	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"size:10;default:'INR'" json:"currency"`
	// 网关侧订单/支付标识
	GatewayOrderID   string        `gorm:"size:100;index" json:"gatewayOrderId"`
	GatewayPaymentID string        `gorm:"size:100" json:"gatewayPaymentId"`
	Status           PaymentStatus `gorm:"type:enum('created','paid','failed');default:'created'" json:"status"`
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}
