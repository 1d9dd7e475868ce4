package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var db *gorm.DB

func GetDB() *gorm.DB {
	return db
}

func InitDB() {
	cfg := LoadConfig()
	cfg.Print()

	if err := InitWith(mysql.Open(cfg.MySQLDSN)); err != nil {
		panic("failed to connect database: " + err.Error())
	}
	fmt.Println("Connected to MySQL!")
}

// InitWith 用指定方言初始化连接并迁移表结构，测试用内存sqlite走这里
func InitWith(dialector gorm.Dialector) error {
	var err error
	db, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}

	// 自动迁移表结构
	return db.AutoMigrate(
		&User{}, &GameProgress{}, &Garden{}, &GardenItem{},
		&Pet{}, &InventoryItem{}, &Friendship{}, &Message{}, &Transaction{},
	)
}
