package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storefront/common/entity"
)

// Open 连接 MySQL 并配置连接池
func Open(dsn string, autoMigrate bool) (*gorm.DB, error) {
	return open(mysql.Open(dsn), autoMigrate)
}

// open 迁移失败时关闭连接池再返回
func open(dialector gorm.Dialector, autoMigrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if autoMigrate {
		if err := db.AutoMigrate(&entity.Order{}, &entity.OrderAdminNote{}); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("auto migrate failed: %w", err)
		}
	}

	return db, nil
}

// Close 关闭底层连接
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
