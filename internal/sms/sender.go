// Package sms delivers one-time codes through an external SMS gateway.
package sms

import (
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrNotConfigured = errors.New("twilio credentials are not configured")

// Sender dispatches a text message to a phone number. Implementations are
// attempted exactly once per request; callers surface failures, they do not
// retry.
type Sender interface {
	Send(to, body string) error
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client     *twilio.RestClient
	from       string
	configured bool
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from:       from,
		configured: accountSID != "" && authToken != "" && from != "",
	}
}

func (s *TwilioSender) Send(to, body string) error {
	if !s.configured {
		return ErrNotConfigured
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send failed: %w", err)
	}
	return nil
}
