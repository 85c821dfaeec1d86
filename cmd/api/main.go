package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadecall/booking-api/internal/cache"
	"github.com/fadecall/booking-api/internal/config"
	dbpkg "github.com/fadecall/booking-api/internal/db"
	"github.com/fadecall/booking-api/internal/jobs"
	"github.com/fadecall/booking-api/internal/middleware"
	"github.com/fadecall/booking-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	slots := cache.NewSlotCache(cfg.RedisAddr)

	runner := jobs.New(db)
	runner.Start()
	defer runner.Stop()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, slots)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
