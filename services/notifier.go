package services

import (
	"errors"
	"strings"

	"accel-erp-backend/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// Messenger delivers a text message to a phone number in E.164 format.
type Messenger interface {
	Send(to, body string) (channel, sid string, err error)
}

type TwilioMessenger struct {
	client       *twilio.RestClient
	from         string
	whatsAppFrom string
}

// NewTwilioMessenger returns nil when Twilio credentials are not configured.
func NewTwilioMessenger(cfg config.Config) *TwilioMessenger {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		return nil
	}
	if cfg.TwilioPhoneNumber == "" && cfg.TwilioWhatsAppNumber == "" {
		return nil
	}
	return &TwilioMessenger{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from:         cfg.TwilioPhoneNumber,
		whatsAppFrom: cfg.TwilioWhatsAppNumber,
	}
}

// Send prefers WhatsApp when a WhatsApp sender is configured.
func (m *TwilioMessenger) Send(to, body string) (string, string, error) {
	channel := ChannelSMS
	from := m.from
	if m.whatsAppFrom != "" {
		channel = ChannelWhatsApp
		from = "whatsapp:" + m.whatsAppFrom
		to = "whatsapp:" + strings.TrimPrefix(to, "whatsapp:")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := m.client.Api.CreateMessage(params)
	if err != nil {
		return channel, "", err
	}
	if resp.Sid == nil {
		return channel, "", errors.New("twilio returned no message SID")
	}
	return channel, *resp.Sid, nil
}
