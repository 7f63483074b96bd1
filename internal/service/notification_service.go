package service

import (
	"fmt"
	"tlms_backend/internal/config"
	"tlms_backend/pkg/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// NotificationService 通过 SendGrid 发送运营通知邮件。
// 所有通知都是尽力而为：失败只记日志，不影响主流程。
type NotificationService struct {
	cfg    *config.EmailConfig
	client *sendgrid.Client
}

func NewNotificationService(cfg *config.EmailConfig) *NotificationService {
	s := &NotificationService{cfg: cfg}
	if cfg.APIKey != "" {
		s.client = sendgrid.NewSendClient(cfg.APIKey)
	}
	return s
}

func (s *NotificationService) send(toEmail, toName, subject, plainText, htmlBody string) error {
	if s.client == nil {
		// 未配置邮件服务时静默跳过
		logger.Log.Debug("Email disabled, skipping notification", zap.String("subject", subject))
		return nil
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)

	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// SendCourseRemovalNotification 课程被下架时通知讲师，附下架原因
func (s *NotificationService) SendCourseRemovalNotification(toEmail, toName, courseTitle, reason string) error {
	subject := "您的课程已被下架"
	plain := fmt.Sprintf("您好 %s，您的课程《%s》已被管理员下架。原因：%s", toName, courseTitle, reason)
	html := fmt.Sprintf("<p>您好 %s，</p><p>您的课程《<strong>%s</strong>》已被管理员下架。</p><p>原因：%s</p>", toName, courseTitle, reason)
	return s.send(toEmail, toName, subject, plain, html)
}

// SendCourseReviewResult 课程审核结果通知（通过/驳回）
func (s *NotificationService) SendCourseReviewResult(toEmail, toName, courseTitle string, approved bool, reason string) error {
	if approved {
		subject := "您的课程已通过审核"
		plain := fmt.Sprintf("您好 %s，您的课程《%s》已通过审核并发布。", toName, courseTitle)
		html := fmt.Sprintf("<p>您好 %s，</p><p>您的课程《<strong>%s</strong>》已通过审核并发布。</p>", toName, courseTitle)
		return s.send(toEmail, toName, subject, plain, html)
	}
	subject := "您的课程未通过审核"
	plain := fmt.Sprintf("您好 %s，您的课程《%s》未通过审核。原因：%s", toName, courseTitle, reason)
	html := fmt.Sprintf("<p>您好 %s，</p><p>您的课程《<strong>%s</strong>》未通过审核。</p><p>原因：%s</p>", toName, courseTitle, reason)
	return s.send(toEmail, toName, subject, plain, html)
}

// SendEducatorApprovalResult 讲师账号审批结果通知
func (s *NotificationService) SendEducatorApprovalResult(toEmail, toName string, approved bool) error {
	if approved {
		subject := "讲师账号审批通过"
		plain := fmt.Sprintf("您好 %s，您的讲师账号已审批通过，现在可以创建和发布课程了。", toName)
		html := fmt.Sprintf("<p>您好 %s，</p><p>您的讲师账号已审批通过，现在可以创建和发布课程了。</p>", toName)
		return s.send(toEmail, toName, subject, plain, html)
	}
	subject := "讲师账号审批未通过"
	plain := fmt.Sprintf("您好 %s，很抱歉，您的讲师账号申请未通过审批。", toName)
	html := fmt.Sprintf("<p>您好 %s，</p><p>很抱歉，您的讲师账号申请未通过审批。</p>", toName)
	return s.send(toEmail, toName, subject, plain, html)
}
