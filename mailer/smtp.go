package mailer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Juandaamez/inventario-backend/utils"
	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Usuario  string
	Password string
	From     string
}

func SMTPConfigDesdeEnv() SMTPConfig {
	cfg := SMTPConfig{
		Host:     strings.TrimSpace(os.Getenv("EMAIL_HOST")),
		Usuario:  strings.TrimSpace(os.Getenv("EMAIL_HOST_USER")),
		Password: os.Getenv("EMAIL_HOST_PASSWORD"),
		From:     strings.TrimSpace(os.Getenv("DEFAULT_FROM_EMAIL")),
	}
	cfg.Port = 587
	if v := strings.TrimSpace(os.Getenv("EMAIL_PORT")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.Port = parsed
		}
	}
	if cfg.From == "" {
		cfg.From = "noreply@inventario.com"
	}
	return cfg
}

type SMTPClient struct {
	cfg SMTPConfig
}

func NuevoSMTP(cfg SMTPConfig) *SMTPClient {
	return &SMTPClient{cfg: cfg}
}

// Enviar delivers through SMTP and returns how many messages went out
// (0 or 1). A missing host reports ErrorMissingCredential.
func (c *SMTPClient) Enviar(msg Mensaje) (int, error) {
	if c.cfg.Host == "" {
		return 0, fmt.Errorf("EMAIL_HOST no configurado: %w", utils.ErrorMissingCredential)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.cfg.From)
	m.SetHeader("To", msg.Para)
	m.SetHeader("Subject", msg.Asunto)
	if msg.Texto != "" {
		m.SetBody("text/plain", msg.Texto)
		if msg.HTML != "" {
			m.AddAlternative("text/html", msg.HTML)
		}
	} else {
		m.SetBody("text/html", msg.HTML)
	}

	for _, adjunto := range msg.Adjuntos {
		contenido := adjunto.Contenido
		m.Attach(adjunto.Nombre, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(contenido)
			return err
		}))
	}

	d := gomail.NewDialer(c.cfg.Host, c.cfg.Port, c.cfg.Usuario, c.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return 0, &utils.DeliveryError{Proveedor: "smtp", Detalle: err.Error()}
	}
	return 1, nil
}
