package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hitkalariya/portfolio-api/internal/config"
	appErr "github.com/hitkalariya/portfolio-api/internal/pkg/errors"
)

type ContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Honeypot string `json:"honeypot"`
}

type ContactService struct {
	sender    EmailSender
	contactTo string
	ownerName string
	baseURL   string
}

func NewContactService(sender EmailSender, mailCfg config.MailConfig, site config.SiteConfig) *ContactService {
	return &ContactService{
		sender:    sender,
		contactTo: mailCfg.ContactTo,
		ownerName: site.OwnerName,
		baseURL:   strings.TrimSuffix(site.BaseURL, "/"),
	}
}

// Validate mirrors the form constraints the frontend enforces. The
// honeypot field is invisible to humans; anything in it means a bot.
func (s *ContactService) Validate(req *ContactRequest) error {
	if req.Honeypot != "" {
		return appErr.ErrSpam
	}
	if len(strings.TrimSpace(req.Name)) < 2 {
		return appErr.ErrInvalid
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return appErr.ErrInvalid
	}
	if len(strings.TrimSpace(req.Subject)) < 5 {
		return appErr.ErrInvalid
	}
	if len(strings.TrimSpace(req.Message)) < 10 {
		return appErr.ErrInvalid
	}
	return nil
}

// Submit emails the message to the site owner and sends a best-effort
// auto-reply to the visitor. A failed auto-reply is logged but does not
// fail the submission.
func (s *ContactService) Submit(ctx context.Context, req *ContactRequest) error {
	if err := s.Validate(req); err != nil {
		return err
	}
	if s.contactTo == "" {
		return appErr.ErrInternal
	}

	subject := "Portfolio Contact: " + req.Subject
	body := fmt.Sprintf("New contact form message.\n\nFrom: %s (%s)\nSubject: %s\n\n%s\n",
		req.Name, req.Email, req.Subject, req.Message)
	if err := s.sender.Send(s.contactTo, subject, body, req.Email); err != nil {
		logutil.GetLogger(ctx).Error("contact mail delivery failed", zap.Error(err))
		return err
	}

	reply := fmt.Sprintf("Hi %s,\n\nThank you for your message! I've received your inquiry and will get back to you as soon as possible, typically within 24-48 hours.\n\nIn the meantime, feel free to explore my projects at %s/projects or my blog at %s/blog.\n\nBest regards,\n%s\n",
		req.Name, s.baseURL, s.baseURL, s.ownerName)
	if err := s.sender.Send(req.Email, "Thank you for your message!", reply, ""); err != nil {
		logutil.GetLogger(ctx).Warn("auto-reply delivery failed", zap.Error(err))
	}
	return nil
}
