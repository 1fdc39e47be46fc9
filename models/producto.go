package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Juandaamez/inventario-backend/config"
	"github.com/Juandaamez/inventario-backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Producto belongs to an Empresa. Precios is a currency -> unit price map
// ({"COP": 2500, "USD": 0.6}); products quoted in one currency only carry
// one entry.
type Producto struct {
	ID              int                `gorm:"primary_key" json:"id"`
	Codigo          string             `gorm:"size:50;uniqueIndex;not null" json:"codigo"`
	Nombre          string             `gorm:"size:150;not null" json:"nombre"`
	Caracteristicas string             `gorm:"type:text" json:"caracteristicas"`
	Precios         datatypes.JSONMap  `json:"precios"`
	EmpresaNit      string             `gorm:"size:20;index;not null" json:"empresa_nit"`
	Empresa         *Empresa           `gorm:"foreignKey:EmpresaNit;references:Nit" json:"empresa,omitempty"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProducto struct {
	Codigo          string                 `json:"codigo" binding:"required"`
	Nombre          string                 `json:"nombre" binding:"required"`
	Caracteristicas string                 `json:"caracteristicas"`
	Precios         map[string]interface{} `json:"precios"`
	EmpresaNit      string                 `json:"empresa_nit" binding:"required"`
}

// MonedaBase is the currency totals and reports are computed in.
const MonedaBase = "COP"

// PrecioEn returns the product price in the given currency, zero when the
// product has no price in it. JSON numbers arrive as float64 or string
// depending on the driver; both are normalized through decimal.
func (p *Producto) PrecioEn(moneda string) decimal.Decimal {
	if p == nil || p.Precios == nil {
		return decimal.Zero
	}
	raw, ok := p.Precios[moneda]
	if !ok {
		return decimal.Zero
	}
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		return decimal.Zero
	}
}

func (input *NewProducto) validate(ctx context.Context, id int) error {
	codigo := strings.TrimSpace(input.Codigo)
	if codigo == "" {
		return fmt.Errorf("el codigo es requerido: %w", utils.ErrorInvalidInput)
	}
	if strings.TrimSpace(input.Nombre) == "" {
		return fmt.Errorf("el nombre es requerido: %w", utils.ErrorInvalidInput)
	}

	// prices must be non-negative
	for moneda, raw := range input.Precios {
		p := (&Producto{Precios: datatypes.JSONMap(input.Precios)}).PrecioEn(moneda)
		if p.IsNegative() {
			return fmt.Errorf("precio negativo para %s (%v): %w", moneda, raw, utils.ErrorInvalidInput)
		}
	}

	// empresa must exist
	if _, err := GetEmpresa(ctx, input.EmpresaNit); err != nil {
		return err
	}

	// codigo unique across all productos
	db := config.GetDB()
	var count int64
	err := db.WithContext(ctx).Model(&Producto{}).
		Where("codigo = ? AND id != ?", codigo, id).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("ya existe un producto con codigo %s: %w", codigo, utils.ErrorInvalidInput)
	}

	return nil
}

func CreateProducto(ctx context.Context, input *NewProducto) (*Producto, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	producto := Producto{
		Codigo:          strings.TrimSpace(input.Codigo),
		Nombre:          strings.TrimSpace(input.Nombre),
		Caracteristicas: input.Caracteristicas,
		Precios:         datatypes.JSONMap(input.Precios),
		EmpresaNit:      input.EmpresaNit,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&producto).Error; err != nil {
		return nil, err
	}
	return &producto, nil
}

func UpdateProducto(ctx context.Context, id int, input *NewProducto) (*Producto, error) {
	producto, err := GetProducto(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(producto).Updates(map[string]interface{}{
		"Codigo":          strings.TrimSpace(input.Codigo),
		"Nombre":          strings.TrimSpace(input.Nombre),
		"Caracteristicas": input.Caracteristicas,
		"Precios":         datatypes.JSONMap(input.Precios),
		"EmpresaNit":      input.EmpresaNit,
	}).Error
	if err != nil {
		return nil, err
	}
	return producto, nil
}

func DeleteProducto(ctx context.Context, id int) (*Producto, error) {
	producto, err := GetProducto(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(producto).Error; err != nil {
		return nil, err
	}
	return producto, nil
}

func GetProducto(ctx context.Context, id int) (*Producto, error) {
	db := config.GetDB()
	var producto Producto
	err := db.WithContext(ctx).Preload("Empresa").First(&producto, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("producto %d: %w", id, utils.ErrorRecordNotFound)
		}
		return nil, err
	}
	return &producto, nil
}

func ListProductos(ctx context.Context, empresaNit string, search string) ([]Producto, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Model(&Producto{}).Preload("Empresa").Order("nombre ASC")
	if empresaNit != "" {
		query = query.Where("empresa_nit = ?", empresaNit)
	}
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + s + "%"
		query = query.Where("codigo LIKE ? OR nombre LIKE ? OR caracteristicas LIKE ?", like, like, like)
	}

	var productos []Producto
	if err := query.Find(&productos).Error; err != nil {
		return nil, err
	}
	return productos, nil
}
