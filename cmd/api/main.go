package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"folio-backend/internal/config"
	"folio-backend/internal/interfaces/router"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}

	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		panic("app create: " + err.Error())
	}

	// Verify connections before announcing startup.
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			panic("database: get DB: " + err.Error())
		}
		if err := sqlDB.Ping(); err != nil {
			panic("database connection failed: " + err.Error())
		}
		fmt.Println("Database connected")
	} else {
		fmt.Printf("Portfolio file: %s\n", cfg.PortfolioFile)
	}
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			panic("Redis connection failed: " + err.Error())
		}
		fmt.Println("Redis connected")
	}
	fmt.Printf("Server running at http://localhost:%s\n", cfg.Port)
	fmt.Printf("Health check: http://localhost:%s/health/json\n", cfg.Port)
	fmt.Println("---")

	if err := app.Listen(":" + cfg.Port); err != nil {
		panic(err)
	}
}
