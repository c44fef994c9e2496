package twilio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/muhammadheryan/identity-service/cmd/config"
)

// Client sends SMS through the Twilio Messages REST API
type Client interface {
	SendSMS(ctx context.Context, to, message string) error
}

type twilioClient struct {
	baseURL    string
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
}

func NewClient(cfg config.TwilioConfig) Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}
	return &twilioClient{
		baseURL:    baseURL,
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.From,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *twilioClient) SendSMS(ctx context.Context, to, message string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	data := url.Values{}
	data.Set("To", to)
	data.Set("From", c.from)
	data.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create Twilio SMS request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Twilio SMS request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("twilio send failed status=%d: %s", resp.StatusCode, string(body))
	}
	return nil
}
