package utils

import (
	"fmt"
	"log"

	"ledgerline/config"

	"github.com/go-resty/resty/v2"
)

// SMSSender dispatches an OTP to a mobile number.
type SMSSender interface {
	SendOTP(mobile, otp string) error
}

// Fast2SMSSender sends DLT-route OTP messages through the Fast2SMS bulk API.
type Fast2SMSSender struct {
	client   *resty.Client
	apiKey   string
	apiURL   string
	senderID string
}

func NewFast2SMSSender(cfg *config.Config) *Fast2SMSSender {
	return &Fast2SMSSender{
		client:   resty.New(),
		apiKey:   cfg.LocalTextApi,
		apiURL:   cfg.LocalTextApiUrl,
		senderID: cfg.SmsSenderID,
	}
}

func (s *Fast2SMSSender) SendOTP(mobile, otp string) error {
	// OTP plus validity window in minutes, per the DLT template
	variables := fmt.Sprintf("%s|10", otp)

	resp, err := s.client.R().
		SetQueryParams(map[string]string{
			"authorization":    s.apiKey,
			"route":            "dlt",
			"sender_id":        s.senderID,
			"variables_values": variables,
			"flash":            "0",
			"numbers":          mobile,
		}).
		Get(s.apiURL)
	if err != nil {
		log.Printf("Error while sending OTP to %s: %v", mobile, err)
		return err
	}

	if resp.StatusCode() != 200 {
		log.Printf("Failed to send OTP, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP, code: %d", resp.StatusCode())
	}

	log.Println("OTP sent successfully to", mobile)
	return nil
}
