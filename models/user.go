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

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Name      string    `gorm:"size:100" json:"name"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsAdmin   *bool     `gorm:"not null;default:false" json:"is_admin"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

var ErrorCredencialesInvalidas = errors.New("usuario o contrasena incorrectos")

// Login verifies credentials and returns the user plus a signed JWT.
func Login(ctx context.Context, username, password string) (*User, string, error) {
	db := config.GetDB()

	var user User
	err := db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrorCredencialesInvalidas
		}
		return nil, "", err
	}

	if user.IsActive == nil || !*user.IsActive {
		return nil, "", ErrorCredencialesInvalidas
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, "", ErrorCredencialesInvalidas
	}

	isAdmin := user.IsAdmin != nil && *user.IsAdmin
	token, err := utils.JwtGenerate(user.ID, user.Username, isAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("generando token: %w", err)
	}

	return &user, token, nil
}
