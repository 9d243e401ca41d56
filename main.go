package main

import (
	"log"
	"time"

	"vet-clinic-api/config"
	"vet-clinic-api/database"
	authapi "vet-clinic-api/internal/api/auth"
	routes "vet-clinic-api/internal/app/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	cfg := config.Load()

	db, err := database.Init(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(r, db, cfg, authapi.NewSMTPMailer(cfg))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
