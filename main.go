package main

import (
	"github.com/iamatos3/roamer-api/config"
	"github.com/iamatos3/roamer-api/models"
	"github.com/iamatos3/roamer-api/routes"
	"github.com/iamatos3/roamer-api/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s", cfg.AppPort)
	if err := utils.RunServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
