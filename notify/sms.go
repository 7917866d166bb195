package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/surajjj07/Ecommerce-website/config"
)

// HTTPSMSSender posts messages to an SMS gateway's REST endpoint.
type HTTPSMSSender struct {
	cfg    config.SMSConfig
	client *http.Client
}

func NewHTTPSMSSender(cfg config.SMSConfig) *HTTPSMSSender {
	return &HTTPSMSSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSMSSender) Send(ctx context.Context, to, body string) error {
	if s.cfg.GatewayURL == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	form := url.Values{}
	form.Set("to", to)
	form.Set("from", s.cfg.Sender)
	form.Set("body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
