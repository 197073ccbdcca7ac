// File: cmd/service/main.go
// @title        DineHub API
// @version      1.0
// @description  餐廳點餐平台的帳號與餐廳管理後端 API
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"log"
	"os"
)

func main() {
	cmd := run
	if len(os.Args) > 1 && os.Args[1] == "rollback" {
		cmd = rollback
	}
	if err := cmd(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
