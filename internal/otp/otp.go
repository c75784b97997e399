package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

const Length = 6

func Generate() (string, error) {
	code := make([]byte, Length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}

// Sender delivers a one-time code to a mobile number.
type Sender interface {
	Send(mobile, code string) error
}

// TwilioSender delivers OTPs through the Twilio SMS API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, from: from}
}

func (s *TwilioSender) Send(mobile, code string) error {
	params := &api.CreateMessageParams{}
	params.SetTo(mobile)
	params.SetFrom(s.from)
	params.SetBody(fmt.Sprintf("Your OTP is %s", code))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}
