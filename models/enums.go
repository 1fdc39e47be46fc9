package models

// EstadoEnvio is the lifecycle state of a delivery record. A record is
// created as Pendiente and transitions exactly once to Enviado or Fallido.
type EstadoEnvio string

const (
	EstadoEnvioPendiente EstadoEnvio = "pendiente"
	EstadoEnvioEnviado   EstadoEnvio = "enviado"
	EstadoEnvioFallido   EstadoEnvio = "fallido"
)

func (e EstadoEnvio) EsTerminal() bool {
	return e == EstadoEnvioEnviado || e == EstadoEnvioFallido
}

// ProveedorEmail tags which transport actually delivered (or last failed).
type ProveedorEmail string

const (
	ProveedorEmailResend ProveedorEmail = "resend"
	ProveedorEmailSMTP   ProveedorEmail = "smtp"
	ProveedorEmailManual ProveedorEmail = "manual"
)
