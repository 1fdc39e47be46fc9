package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Juandaamez/inventario-backend/config"
	"github.com/Juandaamez/inventario-backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Inventario struct {
	ID                 int       `gorm:"primary_key" json:"id"`
	ProductoID         int       `gorm:"index;not null" json:"producto_id"`
	Producto           *Producto `gorm:"foreignKey:ProductoID" json:"producto,omitempty"`
	Cantidad           int       `gorm:"not null;default:0" json:"cantidad"`
	FechaActualizacion time.Time `gorm:"autoUpdateTime" json:"fecha_actualizacion"`
}

type NewInventario struct {
	ProductoID int `json:"producto_id" binding:"required"`
	Cantidad   int `json:"cantidad"`
}

// FilaInventario is one row of a company's inventory snapshot: the flat,
// read-only shape the report/analysis pipeline consumes.
type FilaInventario struct {
	ProductoCodigo     string          `json:"producto_codigo"`
	ProductoNombre     string          `json:"producto_nombre"`
	Cantidad           int             `json:"cantidad"`
	ProductoPrecio     decimal.Decimal `json:"producto_precio"`
	FechaActualizacion time.Time       `json:"fecha_actualizacion"`
}

func (input *NewInventario) validate(ctx context.Context) error {
	if input.Cantidad < 0 {
		return fmt.Errorf("la cantidad no puede ser negativa: %w", utils.ErrorInvalidInput)
	}
	if _, err := GetProducto(ctx, input.ProductoID); err != nil {
		return err
	}
	return nil
}

func CreateInventario(ctx context.Context, input *NewInventario) (*Inventario, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	inventario := Inventario{
		ProductoID: input.ProductoID,
		Cantidad:   input.Cantidad,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&inventario).Error; err != nil {
		return nil, err
	}
	return &inventario, nil
}

func UpdateInventario(ctx context.Context, id int, input *NewInventario) (*Inventario, error) {
	inventario, err := GetInventario(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(inventario).Updates(map[string]interface{}{
		"ProductoID": input.ProductoID,
		"Cantidad":   input.Cantidad,
	}).Error
	if err != nil {
		return nil, err
	}
	return inventario, nil
}

func DeleteInventario(ctx context.Context, id int) (*Inventario, error) {
	inventario, err := GetInventario(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(inventario).Error; err != nil {
		return nil, err
	}
	return inventario, nil
}

func GetInventario(ctx context.Context, id int) (*Inventario, error) {
	db := config.GetDB()
	var inventario Inventario
	err := db.WithContext(ctx).Preload("Producto").Preload("Producto.Empresa").First(&inventario, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("inventario %d: %w", id, utils.ErrorRecordNotFound)
		}
		return nil, err
	}
	return &inventario, nil
}

func ListInventarios(ctx context.Context, empresaNit string, productoCodigo string) ([]Inventario, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Model(&Inventario{}).
		Preload("Producto").Preload("Producto.Empresa").
		Joins("JOIN productos ON productos.id = inventarios.producto_id").
		Order("inventarios.fecha_actualizacion DESC")
	if empresaNit != "" {
		query = query.Where("productos.empresa_nit = ?", empresaNit)
	}
	if productoCodigo != "" {
		query = query.Where("productos.codigo = ?", productoCodigo)
	}

	var inventarios []Inventario
	if err := query.Find(&inventarios).Error; err != nil {
		return nil, err
	}
	return inventarios, nil
}

// SnapshotInventario resolves a company's current inventory into flat rows,
// pricing every product in the base currency. The receiving pipeline treats
// the result as read-only.
func SnapshotInventario(ctx context.Context, empresaNit string) ([]FilaInventario, error) {
	inventarios, err := ListInventarios(ctx, empresaNit, "")
	if err != nil {
		return nil, err
	}

	filas := make([]FilaInventario, 0, len(inventarios))
	for _, inv := range inventarios {
		fila := FilaInventario{
			Cantidad:           inv.Cantidad,
			FechaActualizacion: inv.FechaActualizacion,
		}
		if inv.Producto != nil {
			fila.ProductoCodigo = inv.Producto.Codigo
			fila.ProductoNombre = inv.Producto.Nombre
			fila.ProductoPrecio = inv.Producto.PrecioEn(MonedaBase)
		}
		filas = append(filas, fila)
	}
	return filas, nil
}
