package router

import (
	"time"

	"frontdesk/internal/config"
	"frontdesk/internal/engine"
	"frontdesk/internal/handler"
	"frontdesk/internal/middleware"
	"frontdesk/internal/repository"
	"frontdesk/internal/service"
	"frontdesk/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Engine/Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, eng *engine.Engine, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	roomRepo := repository.NewRoomConfigRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	checkinSvc := service.NewCheckinService(eng)
	extensionSvc := service.NewExtensionService(eng, roomRepo)
	progressSvc := service.NewEmailProgressService(eng, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	checkinsH := handler.NewCheckinsHandler(checkinSvc, cfg)
	extensionH := handler.NewExtensionHandler(extensionSvc)
	progressH := handler.NewEmailProgressHandler(progressSvc)
	roomsH := handler.NewRoomsHandler(roomRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")
	{
		api.GET("/checkins", checkinsH.List)

		ext := api.Group("/extension")
		{
			ext.GET("/inhouse", extensionH.InHouse)
			ext.GET("/availability", extensionH.CheckAvailability)
		}

		progress := api.Group("/email-progress")
		{
			progress.GET("", progressH.Eligible)
			progress.POST("/send", progressH.Send)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomsH.List)
			rooms.PUT("/:room", roomsH.Upsert)
		}
	}

	return r
}
