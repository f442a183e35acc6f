package repo

import (
	"errors"
	"fmt"
	"strings"

	"WishlistX/internal/model"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// ErrNotFound — запись не найдена или принадлежит другому пользователю.
var ErrNotFound = errors.New("not found")

const defaultSQLiteDSN = "file:wishlistx.db?_pragma=foreign_keys(1)"

// InitDB открывает базу по DSN и применяет миграции.
// postgres://, postgresql:// и строки вида "host=..." открываются драйвером Postgres,
// всё остальное считается путём или DSN SQLite (modernc).
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func dialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.HasPrefix(dsn, "host="):
		return postgres.Open(dsn)
	case dsn == "":
		dsn = defaultSQLiteDSN
	}
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
}

// Migrate создаёт или обновляет таблицы всех моделей.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Wishlist{}, &model.Favorite{}, &model.Share{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
