package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hitkalariya/portfolio-api/internal/config"
	appErr "github.com/hitkalariya/portfolio-api/internal/pkg/errors"
	"github.com/hitkalariya/portfolio-api/internal/service"
)

type sentMail struct {
	to      string
	subject string
	body    string
	replyTo string
}

type fakeSender struct {
	sent    []sentMail
	failFor map[string]error
}

func (s *fakeSender) Send(to, subject, body, replyTo string) error {
	if err, ok := s.failFor[to]; ok {
		return err
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body, replyTo: replyTo})
	return nil
}

func newContactService(sender service.EmailSender) *service.ContactService {
	return service.NewContactService(sender,
		config.MailConfig{ContactTo: "owner@example.com"},
		config.SiteConfig{OwnerName: "Hit Kalariya", BaseURL: "https://example.com/"},
	)
}

func validRequest() *service.ContactRequest {
	return &service.ContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Collaboration inquiry",
		Message: "I would like to discuss a project with you.",
	}
}

func TestContactValidateRejectsBadInput(t *testing.T) {
	svc := newContactService(&fakeSender{})

	cases := map[string]func(*service.ContactRequest){
		"short name":    func(r *service.ContactRequest) { r.Name = "J" },
		"bad email":     func(r *service.ContactRequest) { r.Email = "not-an-email" },
		"short subject": func(r *service.ContactRequest) { r.Subject = "Hi" },
		"short message": func(r *service.ContactRequest) { r.Message = "too short" },
	}
	for name, mutate := range cases {
		req := validRequest()
		mutate(req)
		require.ErrorIs(t, svc.Validate(req), appErr.ErrInvalid, name)
	}
}

func TestContactHoneypotIsSpam(t *testing.T) {
	svc := newContactService(&fakeSender{})
	req := validRequest()
	req.Honeypot = "gotcha"

	require.ErrorIs(t, svc.Validate(req), appErr.ErrSpam)
}

func TestContactSubmitSendsOwnerMailAndAutoReply(t *testing.T) {
	sender := &fakeSender{}
	svc := newContactService(sender)

	require.NoError(t, svc.Submit(context.Background(), validRequest()))
	require.Len(t, sender.sent, 2)

	owner := sender.sent[0]
	require.Equal(t, "owner@example.com", owner.to)
	require.Equal(t, "Portfolio Contact: Collaboration inquiry", owner.subject)
	require.Equal(t, "jane@example.com", owner.replyTo)
	require.Contains(t, owner.body, "Jane Doe")

	reply := sender.sent[1]
	require.Equal(t, "jane@example.com", reply.to)
	require.Contains(t, reply.body, "Hi Jane Doe,")
	require.Contains(t, reply.body, "https://example.com/projects")
}

func TestContactSubmitFailedAutoReplyIsNotFatal(t *testing.T) {
	sender := &fakeSender{failFor: map[string]error{"jane@example.com": errors.New("mailbox full")}}
	svc := newContactService(sender)

	require.NoError(t, svc.Submit(context.Background(), validRequest()))
	require.Len(t, sender.sent, 1)
	require.Equal(t, "owner@example.com", sender.sent[0].to)
}

func TestContactSubmitOwnerMailFailureIsFatal(t *testing.T) {
	sender := &fakeSender{failFor: map[string]error{"owner@example.com": errors.New("smtp down")}}
	svc := newContactService(sender)

	require.Error(t, svc.Submit(context.Background(), validRequest()))
	require.Empty(t, sender.sent)
}
