package main

import (
	"fmt"
	"os"
)

type Config struct {
	ListenAddr string
}

func LoadConfig() *Config {
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return &Config{
		ListenAddr: addr,
	}
}

func (c *Config) Print() {
	fmt.Println("Listen Addr:", c.ListenAddr)
}
