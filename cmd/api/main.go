package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "roadwatch/internal/adapter/http"
	appmw "roadwatch/internal/adapter/middleware"
	"roadwatch/internal/adapter/repository/mysql"
	"roadwatch/internal/config"
	roadDomain "roadwatch/internal/domain/road"
	userDomain "roadwatch/internal/domain/user"
	"roadwatch/internal/infrastructure/blob"
	"roadwatch/internal/infrastructure/cache"
	"roadwatch/internal/infrastructure/db"
	"roadwatch/internal/infrastructure/osm"
	roaduc "roadwatch/internal/usecase/road"
	useruc "roadwatch/internal/usecase/user"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := gormDB.AutoMigrate(&roadDomain.Road{}, &roadDomain.Feedback{}, &userDomain.User{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		// Rate limiting fails open without redis; the API stays up.
		log.Printf("redis unavailable, rate limiting disabled: %v", err)
		rdb = nil
	}

	var blobs roaduc.BlobStore
	if cfg.MinioEndpoint != "" {
		store, err := blob.New(blob.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			PublicURL: cfg.MinioPublicURL,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			log.Fatalf("blob: %v", err)
		}
		blobs = store
	} else {
		log.Println("MINIO_ENDPOINT not set, image uploads disabled")
	}

	overpass := osm.NewClient(cfg.OverpassURL)
	nominatim := osm.NewNominatim(cfg.NominatimURL)

	roadRepo := mysql.NewRoadRepository(gormDB)
	feedbackRepo := mysql.NewFeedbackRepository(gormDB)
	userRepo := mysql.NewUserRepository(gormDB)

	roadUC := roaduc.NewUsecase(roadRepo, feedbackRepo, overpass, blobs)
	userUC := useruc.NewUsecase(userRepo, []byte(cfg.JWTSecret),
		time.Duration(cfg.TokenExpireMinutes)*time.Minute)

	roadH := httpadp.NewRoadHandler(roadUC, cfg.MaxImageSizeBytes(), cfg.AllowedImageTypes)
	adminH := httpadp.NewAdminHandler(roadUC)
	authH := httpadp.NewAuthHandler(userUC)
	osmH := httpadp.NewOSMHandler(roadUC, nominatim)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover(), echomw.CORS())

	requireUser := appmw.RequireUser(userUC)
	requireAdmin := appmw.RequireAdmin(cfg.AdminAPIToken)
	limit := func(class string) echo.MiddlewareFunc {
		return appmw.RateLimit(rdb, class, appmw.DefaultPolicies[class])
	}

	e.GET("/health", httpadp.Health)

	e.POST("/auth/register", authH.Register, limit("auth"))
	e.POST("/auth/login", authH.Login, limit("auth"))

	e.GET("/roads", roadH.List, limit("read"))
	e.GET("/roads/map", roadH.MapView, limit("read"))
	e.GET("/roads/osm/:osm_way_id", roadH.GetByOSMWayID, limit("read"))
	e.GET("/roads/:road_id", roadH.Get, limit("read"))
	e.POST("/roads", roadH.Create, limit("create"), requireUser)
	e.PUT("/roads/:road_id", roadH.Update, limit("update"), requireUser)
	e.GET("/roads/:road_id/feedback", roadH.ListFeedback, limit("read"))
	e.POST("/roads/:road_id/feedback", roadH.CreateFeedback, limit("feedback"), requireUser)
	e.POST("/roads/:road_id/image", roadH.UploadImage, limit("upload"), requireUser)

	e.GET("/admin/pending", adminH.ListPending, limit("admin"), requireAdmin)
	e.POST("/admin/approve/:road_id", adminH.Approve, limit("admin"), requireAdmin)
	e.DELETE("/admin/reject/:road_id", adminH.Reject, limit("admin"), requireAdmin)

	e.GET("/osm/search", osmH.Search, limit("read"))
	e.GET("/osm/way/:osm_way_id", osmH.GetWay, limit("read"))
	e.GET("/search", osmH.SearchPlaces, limit("read"))

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
