package model

import (
	"os"

	"filedrop/backend/common"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the metadata store and creates the files table if absent.
// SQLite is the default; setting SQL_DSN switches to MySQL.
func InitDB() (err error) {
	dsn := os.Getenv("SQL_DSN")

	if dsn != "" {
		common.SysLog("using MySQL as database")
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			PrepareStmt:    true,
			TranslateError: true,
		})
	} else {
		common.SysLog("SQL_DSN not set, using SQLite as database: " + common.SQLitePath)
		DB, err = gorm.Open(sqlite.Open(common.SQLitePath), &gorm.Config{
			PrepareStmt:    true,
			TranslateError: true,
		})
	}
	if err != nil {
		return err
	}

	if err = DB.AutoMigrate(&File{}); err != nil {
		return err
	}

	common.SysLog("database initialized successfully")
	return nil
}

func CloseDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
