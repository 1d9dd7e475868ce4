package db

import (
	"log"
	"os"
)

// Config 数据库连接配置
type Config struct {
	MySQLDSN string
}

// LoadConfig 从环境变量读取连接串；连不上库服务没法跑，缺失直接终止启动
func LoadConfig() *Config {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		panic("缺少环境变量 MYSQL_DSN")
	}
	return &Config{MySQLDSN: dsn}
}

func (c *Config) Print() {
	log.Println("MySQL DSN:", c.MySQLDSN)
}
