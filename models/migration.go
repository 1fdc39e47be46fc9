package models

import (
	"log"

	"github.com/Juandaamez/inventario-backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Empresa{}, &Producto{}, &Inventario{},
		&HistorialEnvio{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
