package courier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/platform/httpclient"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/ports/notify"
)

var ErrCourierNotConfigured = errors.New("courier client not configured")

// Config del mailer transaccional externo.
type Config struct {
	BaseURL string
	APIKey  string
	From    string

	Timeout time.Duration
}

// NewConfigFromEnv: COURIER_BASE_URL, COURIER_API_KEY, COURIER_FROM.
func NewConfigFromEnv() Config {
	return Config{
		BaseURL: os.Getenv("COURIER_BASE_URL"),
		APIKey:  os.Getenv("COURIER_API_KEY"),
		From:    os.Getenv("COURIER_FROM"),
	}
}

// Client implementa notify.InvitationNotifier contra el mailer.
// El render del template es del mailer; acá solo van los datos.
type Client struct {
	http   *httpclient.Client
	apiKey string
	from   string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:   hc,
		apiKey: strings.TrimSpace(cfg.APIKey),
		from:   strings.TrimSpace(cfg.From),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

type sendRequest struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}

func (c *Client) SendInvitation(ctx context.Context, inv notify.Invitation) error {
	if !c.IsConfigured() {
		return fmt.Errorf("%w: %v", notify.ErrDeliveryFailed, ErrCourierNotConfigured)
	}
	if strings.TrimSpace(inv.To) == "" || strings.TrimSpace(inv.AcceptURL) == "" {
		return fmt.Errorf("%w: missing recipient or accept url", notify.ErrDeliveryFailed)
	}

	req := sendRequest{
		From:     c.from,
		To:       inv.To,
		Template: "caregiver-invitation",
		Data: map[string]string{
			"accept_url":   inv.AcceptURL,
			"baby_name":    inv.BabyName,
			"inviter_name": inv.InviterName,
		},
	}

	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/messages", map[string]string{
		"X-Api-Key": c.apiKey,
	}, req, nil)
	if err != nil {
		// Toda falla de entrega es no-fatal para el caller.
		return fmt.Errorf("%w: %v", notify.ErrDeliveryFailed, err)
	}
	return nil
}

// NoopNotifier: modo dev sin mailer; loguearlo queda en el service.
type NoopNotifier struct{}

func (NoopNotifier) SendInvitation(ctx context.Context, inv notify.Invitation) error {
	return nil
}
