package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
)

var verificationBody = template.Must(template.New("verify").Parse(
	`<p>Hello{{if .Name}} {{.Name}}{{end}},</p>` +
		`<p>Confirm your account to activate access. The link expires in 24 hours.</p>` +
		`<p><a href="{{.Link}}">Verify Email</a></p>`,
))

// ResendEmailSender delivers verification mail through the Resend API. An
// unconfigured sender returns an error from Send so callers can log and move
// on; registration never depends on delivery.
type ResendEmailSender struct {
	client  *resend.Client
	from    string
	baseURL string
}

func NewResendEmailSender(apiKey string, from string, appBaseURL string) *ResendEmailSender {
	sender := &ResendEmailSender{
		from:    strings.TrimSpace(from),
		baseURL: strings.TrimRight(appBaseURL, "/"),
	}
	if key := strings.TrimSpace(apiKey); key != "" {
		sender.client = resend.NewClient(key)
	}
	return sender
}

func (s *ResendEmailSender) SendVerificationEmail(_ context.Context, email string, name string, token string) error {
	if s.client == nil || s.from == "" {
		return errors.New("email sender not configured")
	}

	var html bytes.Buffer
	err := verificationBody.Execute(&html, struct {
		Name string
		Link string
	}{Name: strings.TrimSpace(name), Link: s.verifyLink(token)})
	if err != nil {
		return err
	}

	_, err = s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email},
		Subject: "Verify your email",
		Html:    html.String(),
		Text:    fmt.Sprintf("Verify your email (expires in 24 hours): %s", s.verifyLink(token)),
	})
	return err
}

func (s *ResendEmailSender) verifyLink(token string) string {
	if s.baseURL == "" {
		return token
	}
	return s.baseURL + "/verify-email?token=" + url.QueryEscape(token)
}
