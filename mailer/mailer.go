package mailer

import (
	"context"
	"errors"

	"github.com/Juandaamez/inventario-backend/config"
	"github.com/Juandaamez/inventario-backend/models"
	"github.com/Juandaamez/inventario-backend/utils"
	"github.com/sirupsen/logrus"
)

// TransportePrimario is the Resend-shaped transport.
type TransportePrimario interface {
	Enviar(ctx context.Context, msg Mensaje) ([]byte, error)
}

// TransporteRespaldo is the SMTP-shaped transport: it reports how many
// messages actually went out.
type TransporteRespaldo interface {
	Enviar(msg Mensaje) (int, error)
}

// Resultado is the delivery outcome recorded into the audit trail.
type Resultado struct {
	Exitoso   bool
	Proveedor models.ProveedorEmail
	Respuesta []byte
	Mensaje   string
}

// Dispatcher tries the primary transport and falls back to SMTP only when
// the primary has no credentials. A primary that is configured but fails
// is a real provider failure and is reported as such, without fallback.
type Dispatcher struct {
	Primario TransportePrimario
	Respaldo TransporteRespaldo
	logger   *logrus.Logger
}

func NuevoDispatcher(primario TransportePrimario, respaldo TransporteRespaldo) *Dispatcher {
	return &Dispatcher{
		Primario: primario,
		Respaldo: respaldo,
		logger:   config.GetLogger(),
	}
}

func NuevoDispatcherDesdeEnv() *Dispatcher {
	return NuevoDispatcher(
		NuevoResend(ResendConfigDesdeEnv()),
		NuevoSMTP(SMTPConfigDesdeEnv()),
	)
}

func (d *Dispatcher) Enviar(ctx context.Context, msg Mensaje) Resultado {
	respuesta, err := d.Primario.Enviar(ctx, msg)
	if err == nil {
		return Resultado{
			Exitoso:   true,
			Proveedor: models.ProveedorEmailResend,
			Respuesta: respuesta,
		}
	}

	if !errors.Is(err, utils.ErrorMissingCredential) {
		config.LogError(d.logger, "mailer", "Enviar", "envio primario fallido",
			map[string]interface{}{"destino": msg.Para}, err)
		return Resultado{
			Exitoso:   false,
			Proveedor: models.ProveedorEmailResend,
			Mensaje:   err.Error(),
		}
	}

	config.LogWarn(d.logger, "mailer", "Enviar",
		"transporte primario sin credenciales, usando respaldo SMTP", err)

	enviados, err := d.Respaldo.Enviar(msg)
	if err != nil {
		config.LogError(d.logger, "mailer", "Enviar", "envio de respaldo fallido",
			map[string]interface{}{"destino": msg.Para}, err)
		return Resultado{
			Exitoso:   false,
			Proveedor: models.ProveedorEmailSMTP,
			Mensaje:   err.Error(),
		}
	}
	if enviados == 0 {
		return Resultado{
			Exitoso:   false,
			Proveedor: models.ProveedorEmailSMTP,
			Mensaje:   "el servidor SMTP no acepto ningun mensaje",
		}
	}

	return Resultado{
		Exitoso:   true,
		Proveedor: models.ProveedorEmailSMTP,
	}
}
