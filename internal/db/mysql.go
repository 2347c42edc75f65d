package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL opens the accounts database. The DSN must enable parseTime so gorm
// can scan the account timestamp columns (see the MYSQL_DSN default in
// internal/config).
func NewMySQL(dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect accounts database: %w", err)
	}
	return gormDB, nil
}
