package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/colorra-dev/colorra/internal/models"
)

// Connect opens the connection pool. The handle is returned to the caller
// and passed down explicitly; there is no package-level singleton.
func Connect(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Palette{},
		&models.Collection{},
		&models.CollectionPalette{},
		&models.PaletteShare{},
	}

	migrator := conn.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := conn.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
