// services/gateway.go
package services

import (
	"fmt"
	"os"

	"github.com/resend/resend-go/v2"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Gateway sends a single SMS or a single email. Each call is independent
// and stateless; retries, if any, belong to the provider, not the caller.
type Gateway interface {
	SendSMS(to, body string) (string, error)
	SendEmail(to, subject, html string) (string, error)
}

// GatewayError is a typed provider failure (auth, rate limit, invalid
// destination). Callers log it and move on; nothing retries within a cycle.
type GatewayError struct {
	Channel string
	Reason  string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s gateway: %s", e.Channel, e.Reason)
}

// ProviderGateway wraps Twilio for SMS and Resend for email.
type ProviderGateway struct {
	sms       *twilio.RestClient
	email     *resend.Client
	smsFrom   string
	emailFrom string
}

// NewProviderGateway builds the production gateway from environment
// credentials. Constructed once per process and injected.
func NewProviderGateway() *ProviderGateway {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	emailFrom := os.Getenv("RESEND_FROM")
	if emailFrom == "" {
		emailFrom = "Ask Your Vet <onboarding@resend.dev>"
	}

	return &ProviderGateway{
		sms: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		email:     resend.NewClient(os.Getenv("RESEND_API_KEY")),
		smsFrom:   os.Getenv("TWILIO_PHONE_NUMBER"),
		emailFrom: emailFrom,
	}
}

func (g *ProviderGateway) SendSMS(to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(g.smsFrom)
	params.SetBody(body)

	resp, err := g.sms.Api.CreateMessage(params)
	if err != nil {
		return "", &GatewayError{Channel: "sms", Reason: err.Error()}
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

func (g *ProviderGateway) SendEmail(to, subject, html string) (string, error) {
	sent, err := g.email.Emails.Send(&resend.SendEmailRequest{
		From:    g.emailFrom,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return "", &GatewayError{Channel: "email", Reason: err.Error()}
	}
	return sent.Id, nil
}
