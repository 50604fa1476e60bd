package main // Entry point package

import (
	"database/sql"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/document-manager/internal/config"
	"github.com/iliyamo/document-manager/internal/database"
	"github.com/iliyamo/document-manager/internal/handler"
	"github.com/iliyamo/document-manager/internal/middleware"
	"github.com/iliyamo/document-manager/internal/queue"
	"github.com/iliyamo/document-manager/internal/repository"
	"github.com/iliyamo/document-manager/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}
	cfg := config.Load()

	var (
		db  *sql.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite3":
		db, err = database.OpenSQLite(cfg.SQLitePath)
	default:
		db, err = database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	docs := repository.NewDocumentRepo(db)
	roles := repository.NewRoleRepo(db)

	authH := handler.NewAuthHandler(cfg, users)
	userH := handler.NewUserHandler(cfg, users, docs)
	docH := handler.NewDocumentHandler(cfg, docs)
	roleH := handler.NewRoleHandler(cfg, roles)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Redis is optional: rate limiting and caching turn themselves off
	// when no server is reachable. Both are attached inside the route
	// groups, after the auth middleware, so their keys carry the
	// verified caller and a cache hit never replays a protected
	// response to an unauthenticated request.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterUsers(e, authH, userH, cfg.JWTSecret, limiter, cache)
	router.RegisterDocuments(e, docH, cfg.JWTSecret, limiter, cache)
	router.RegisterRoles(e, roleH, cfg.JWTSecret, limiter, cache)

	if cfg.AuditEnabled {
		go func() {
			if err := queue.StartAuditConsumer(); err != nil {
				log.Printf("audit consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBDriver)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
