package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Juandaamez/inventario-backend/config"
	"github.com/Juandaamez/inventario-backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HistorialEnvio is the append-only audit record of one report delivery
// attempt. Rows are created in estado pendiente before any transport is
// touched and transition exactly once to enviado or fallido; they are never
// updated again and never deleted by this codebase.
type HistorialEnvio struct {
	ID         int      `gorm:"primary_key" json:"id"`
	PublicId   string   `gorm:"size:36;uniqueIndex;not null" json:"public_id"`
	EmpresaNit string   `gorm:"size:20;index;not null" json:"empresa_nit"`
	Empresa    *Empresa `gorm:"foreignKey:EmpresaNit;references:Nit" json:"empresa,omitempty"`
	UsuarioId  *int     `gorm:"index" json:"usuario_id"`

	EmailDestino string         `gorm:"size:255;not null" json:"email_destino"`
	Asunto       string         `gorm:"size:255;not null" json:"asunto"`
	Estado       EstadoEnvio    `gorm:"size:20;not null;default:'pendiente'" json:"estado"`
	Proveedor    ProveedorEmail `gorm:"size:20" json:"proveedor"`

	// SHA-256 certification: hash of the exact PDF bytes and hash of the
	// canonicalized inventory content.
	DocumentoHash string `gorm:"size:64;index" json:"documento_hash"`
	ContenidoHash string `gorm:"size:64" json:"contenido_hash"`

	TotalProductos  int             `json:"total_productos"`
	TotalUnidades   int             `json:"total_unidades"`
	ValorInventario decimal.Decimal `gorm:"type:decimal(15,2)" json:"valor_inventario"`

	ResumenIA string         `gorm:"type:text" json:"resumen_ia"`
	AlertasIA datatypes.JSON `json:"alertas_ia"`

	RespuestaAPI datatypes.JSON `json:"respuesta_api"`
	MensajeError string         `gorm:"type:text" json:"mensaje_error"`

	FechaCreacion time.Time  `gorm:"autoCreateTime" json:"fecha_creacion"`
	FechaEnvio    *time.Time `json:"fecha_envio"`
}

type NuevoHistorialEnvio struct {
	EmpresaNit      string
	UsuarioId       *int
	EmailDestino    string
	Asunto          string
	DocumentoHash   string
	ContenidoHash   string
	TotalProductos  int
	TotalUnidades   int
	ValorInventario decimal.Decimal
	ResumenIA       string
	AlertasIA       []byte
}

// VerificacionURL is the public path to verify a delivered document by the
// short form of its hash.
func (h *HistorialEnvio) VerificacionURL() string {
	if len(h.DocumentoHash) < 16 {
		return ""
	}
	return "/verificar/" + h.DocumentoHash[:16]
}

func (h *HistorialEnvio) EsExitoso() bool {
	return h.Estado == EstadoEnvioEnviado
}

// CrearHistorialPendiente persists the pending audit row synchronously,
// before any transport attempt, so a crash mid-dispatch still leaves a
// trail.
func CrearHistorialPendiente(ctx context.Context, input *NuevoHistorialEnvio) (*HistorialEnvio, error) {
	asunto := strings.TrimSpace(input.Asunto)
	if len(asunto) < 3 {
		return nil, fmt.Errorf("el asunto debe tener al menos 3 caracteres: %w", utils.ErrorInvalidInput)
	}
	if !utils.IsValidEmail(input.EmailDestino) {
		return nil, fmt.Errorf("email destino %q invalido: %w", input.EmailDestino, utils.ErrorInvalidInput)
	}
	if input.TotalProductos < 0 || input.TotalUnidades < 0 {
		return nil, fmt.Errorf("los totales no pueden ser negativos: %w", utils.ErrorInvalidInput)
	}
	if input.ValorInventario.IsNegative() {
		return nil, fmt.Errorf("el valor del inventario no puede ser negativo: %w", utils.ErrorInvalidInput)
	}

	historial := HistorialEnvio{
		PublicId:        uuid.NewString(),
		EmpresaNit:      input.EmpresaNit,
		UsuarioId:       input.UsuarioId,
		EmailDestino:    input.EmailDestino,
		Asunto:          asunto,
		Estado:          EstadoEnvioPendiente,
		DocumentoHash:   input.DocumentoHash,
		ContenidoHash:   input.ContenidoHash,
		TotalProductos:  input.TotalProductos,
		TotalUnidades:   input.TotalUnidades,
		ValorInventario: input.ValorInventario,
		ResumenIA:       input.ResumenIA,
		AlertasIA:       datatypes.JSON(input.AlertasIA),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&historial).Error; err != nil {
		return nil, err
	}
	return &historial, nil
}

// MarcarEnviado performs the one-way pendiente -> enviado transition.
// Calling it on a record already in a terminal state is a programming
// error and fails loudly instead of being ignored.
func (h *HistorialEnvio) MarcarEnviado(ctx context.Context, proveedor ProveedorEmail, respuesta []byte) error {
	return h.transicionar(ctx, EstadoEnvioEnviado, map[string]interface{}{
		"Estado":       EstadoEnvioEnviado,
		"Proveedor":    proveedor,
		"RespuestaAPI": datatypes.JSON(respuesta),
		"FechaEnvio":   time.Now(),
	})
}

// MarcarFallido performs the one-way pendiente -> fallido transition.
func (h *HistorialEnvio) MarcarFallido(ctx context.Context, proveedor ProveedorEmail, mensajeError string) error {
	return h.transicionar(ctx, EstadoEnvioFallido, map[string]interface{}{
		"Estado":       EstadoEnvioFallido,
		"Proveedor":    proveedor,
		"MensajeError": mensajeError,
	})
}

func (h *HistorialEnvio) transicionar(ctx context.Context, destino EstadoEnvio, valores map[string]interface{}) error {
	if h.Estado.EsTerminal() {
		return fmt.Errorf("historial %d ya esta en estado terminal %q, no puede pasar a %q", h.ID, h.Estado, destino)
	}

	// The WHERE guards against a concurrent writer having won the
	// transition; zero affected rows means the record was no longer
	// pendiente.
	db := config.GetDB()
	res := db.WithContext(ctx).Model(&HistorialEnvio{}).
		Where("id = ? AND estado = ?", h.ID, EstadoEnvioPendiente).
		Updates(valores)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("historial %d ya no esta pendiente, transicion a %q rechazada", h.ID, destino)
	}

	return db.WithContext(ctx).First(h, h.ID).Error
}

func GetHistorialEnvio(ctx context.Context, id int) (*HistorialEnvio, error) {
	db := config.GetDB()
	var historial HistorialEnvio
	err := db.WithContext(ctx).Preload("Empresa").First(&historial, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("historial %d: %w", id, utils.ErrorRecordNotFound)
		}
		return nil, err
	}
	return &historial, nil
}

// GetHistorialPorHash looks a record up by full document hash or by its
// 16-character short prefix (the form embedded in verification URLs).
func GetHistorialPorHash(ctx context.Context, hash string) (*HistorialEnvio, error) {
	hash = strings.ToLower(strings.TrimSpace(hash))
	if len(hash) < 16 {
		return nil, fmt.Errorf("hash %q demasiado corto para verificar: %w", hash, utils.ErrorInvalidInput)
	}

	db := config.GetDB()
	var historial HistorialEnvio
	err := db.WithContext(ctx).Preload("Empresa").
		Where("documento_hash LIKE ?", hash+"%").
		Order("fecha_creacion DESC").
		First(&historial).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("documento %s: %w", hash, utils.ErrorRecordNotFound)
		}
		return nil, err
	}
	return &historial, nil
}

func ListHistorialEnvios(ctx context.Context, empresaNit string) ([]HistorialEnvio, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Model(&HistorialEnvio{}).Preload("Empresa").Order("fecha_creacion DESC")
	if empresaNit != "" {
		query = query.Where("empresa_nit = ?", empresaNit)
	}

	var historial []HistorialEnvio
	if err := query.Find(&historial).Error; err != nil {
		return nil, err
	}
	return historial, nil
}
