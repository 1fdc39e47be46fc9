package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Juandaamez/inventario-backend/config"
	"github.com/Juandaamez/inventario-backend/utils"
	"gorm.io/gorm"
)

type Empresa struct {
	Nit       string    `gorm:"primaryKey;size:20" json:"nit"`
	Nombre    string    `gorm:"size:150;not null" json:"nombre"`
	Direccion string    `gorm:"size:255;not null" json:"direccion"`
	Telefono  string    `gorm:"size:20;not null" json:"telefono"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewEmpresa struct {
	Nit       string `json:"nit" binding:"required"`
	Nombre    string `json:"nombre" binding:"required"`
	Direccion string `json:"direccion" binding:"required"`
	Telefono  string `json:"telefono" binding:"required"`
}

const (
	empresaNombreMin    = 2
	empresaNombreMax    = 150
	empresaDireccionMin = 5
	empresaDireccionMax = 255
	empresaTelefonoMin  = 7
	empresaTelefonoMax  = 20
)

var nombreProhibidos = []string{"<", ">", "{", "}", "[", "]", `\`}

// validate input for both create & update. (nitActual = "" for create)
func (input *NewEmpresa) validate(ctx context.Context, nitActual string) error {
	logger := config.GetLogger()

	// nit: format is enforced, check digit is not. Legacy NITs with a
	// wrong declared digit exist in the wild and must keep working.
	_, conforme, err := utils.ValidarNIT(input.Nit)
	if err != nil {
		return err
	}
	if !conforme {
		config.LogWarn(logger, "empresa.go", "validate", "digito de verificacion no coincide",
			fmt.Errorf("nit %s aceptado sin digito conforme", input.Nit))
	}

	// nombre
	nombre := strings.TrimSpace(input.Nombre)
	if len(nombre) < empresaNombreMin || len(nombre) > empresaNombreMax {
		return fmt.Errorf("el nombre debe tener entre %d y %d caracteres: %w",
			empresaNombreMin, empresaNombreMax, utils.ErrorInvalidInput)
	}
	for _, c := range nombreProhibidos {
		if strings.Contains(nombre, c) {
			return fmt.Errorf("el nombre contiene caracteres no permitidos (%s): %w", c, utils.ErrorInvalidInput)
		}
	}

	// direccion
	direccion := strings.TrimSpace(input.Direccion)
	if len(direccion) < empresaDireccionMin || len(direccion) > empresaDireccionMax {
		return fmt.Errorf("la direccion debe tener entre %d y %d caracteres: %w",
			empresaDireccionMin, empresaDireccionMax, utils.ErrorInvalidInput)
	}

	// telefono: length always, number plausibility only as a warning.
	telefono := strings.TrimSpace(input.Telefono)
	if len(telefono) < empresaTelefonoMin || len(telefono) > empresaTelefonoMax {
		return fmt.Errorf("el telefono debe tener entre %d y %d caracteres: %w",
			empresaTelefonoMin, empresaTelefonoMax, utils.ErrorInvalidInput)
	}
	if err := utils.ValidatePhoneNumber(telefono, utils.CountryCode); err != nil {
		config.LogWarn(logger, "empresa.go", "validate", "telefono no verificable", err)
	}

	// nit must be unique on create
	if nitActual == "" {
		db := config.GetDB()
		var count int64
		if err := db.WithContext(ctx).Model(&Empresa{}).Where("nit = ?", input.Nit).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("ya existe una empresa con nit %s: %w", input.Nit, utils.ErrorInvalidInput)
		}
	}

	return nil
}

func CreateEmpresa(ctx context.Context, input *NewEmpresa) (*Empresa, error) {
	if err := input.validate(ctx, ""); err != nil {
		return nil, err
	}

	empresa := Empresa{
		Nit:       strings.TrimSpace(input.Nit),
		Nombre:    strings.TrimSpace(input.Nombre),
		Direccion: strings.TrimSpace(input.Direccion),
		Telefono:  strings.TrimSpace(input.Telefono),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&empresa).Error; err != nil {
		return nil, err
	}
	return &empresa, nil
}

func UpdateEmpresa(ctx context.Context, nit string, input *NewEmpresa) (*Empresa, error) {
	empresa, err := GetEmpresa(ctx, nit)
	if err != nil {
		return nil, err
	}

	// The NIT is the primary key; it never changes on update.
	input.Nit = nit
	if err := input.validate(ctx, nit); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(empresa).Updates(map[string]interface{}{
		"Nombre":    strings.TrimSpace(input.Nombre),
		"Direccion": strings.TrimSpace(input.Direccion),
		"Telefono":  strings.TrimSpace(input.Telefono),
	}).Error
	if err != nil {
		return nil, err
	}
	return empresa, nil
}

func DeleteEmpresa(ctx context.Context, nit string) (*Empresa, error) {
	empresa, err := GetEmpresa(ctx, nit)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(empresa).Error; err != nil {
		return nil, err
	}
	return empresa, nil
}

func GetEmpresa(ctx context.Context, nit string) (*Empresa, error) {
	db := config.GetDB()
	var empresa Empresa
	err := db.WithContext(ctx).Where("nit = ?", nit).First(&empresa).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("empresa %s: %w", nit, utils.ErrorRecordNotFound)
		}
		return nil, err
	}
	return &empresa, nil
}

func ListEmpresas(ctx context.Context, search string) ([]Empresa, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Model(&Empresa{}).Order("nombre ASC")
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + s + "%"
		query = query.Where("nit LIKE ? OR nombre LIKE ? OR direccion LIKE ?", like, like, like)
	}

	var empresas []Empresa
	if err := query.Find(&empresas).Error; err != nil {
		return nil, err
	}
	return empresas, nil
}
