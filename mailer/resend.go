// Package mailer delivers certified reports by email. Resend is the
// primary transport; classic SMTP is the fallback when Resend is not
// configured.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Juandaamez/inventario-backend/utils"
)

// Adjunto is a named binary attachment.
type Adjunto struct {
	Nombre    string
	TipoMIME  string
	Contenido []byte
}

// Mensaje is the transport-independent outgoing mail.
type Mensaje struct {
	Para     string
	Asunto   string
	HTML     string
	Texto    string
	Adjuntos []Adjunto
}

type ResendConfig struct {
	APIKey  string
	BaseURL string
	From    string
	Timeout time.Duration
}

func ResendConfigDesdeEnv() ResendConfig {
	cfg := ResendConfig{
		APIKey:  strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		BaseURL: strings.TrimSpace(os.Getenv("RESEND_BASE_URL")),
		From:    strings.TrimSpace(os.Getenv("EMAIL_FROM")),
		Timeout: 30 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.resend.com"
	}
	if cfg.From == "" {
		cfg.From = "Inventario <onboarding@resend.dev>"
	}
	return cfg
}

type ResendClient struct {
	cfg        ResendConfig
	httpClient *http.Client
}

func NuevoResend(cfg ResendConfig) *ResendClient {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ResendClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Resend wire types.
type resendEmailRequest struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html,omitempty"`
	Text        string             `json:"text,omitempty"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Enviar posts the message to /emails and returns the raw API response
// body on success. A missing API key reports ErrorMissingCredential so the
// dispatcher can fall back instead of recording a provider failure.
func (c *ResendClient) Enviar(ctx context.Context, msg Mensaje) ([]byte, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, fmt.Errorf("RESEND_API_KEY no configurada: %w", utils.ErrorMissingCredential)
	}

	wire := resendEmailRequest{
		From:    c.cfg.From,
		To:      []string{msg.Para},
		Subject: msg.Asunto,
		HTML:    msg.HTML,
		Text:    msg.Texto,
	}
	for _, adjunto := range msg.Adjuntos {
		wire.Attachments = append(wire.Attachments, resendAttachment{
			Filename: adjunto.Nombre,
			Content:  base64.StdEncoding.EncodeToString(adjunto.Contenido),
		})
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(wire); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/emails", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &utils.DeliveryError{Proveedor: "resend", Detalle: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &utils.DeliveryError{
			Proveedor: "resend",
			Detalle:   fmt.Sprintf("http %d: %s", resp.StatusCode, string(raw)),
		}
	}
	return raw, nil
}
