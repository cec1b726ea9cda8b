package app

import (
	"database/sql"

	"github.com/ribukumar49/leave-management-mini/internal/employee"
	"github.com/ribukumar49/leave-management-mini/internal/leave"
	"github.com/ribukumar49/leave-management-mini/internal/messaging/kafka"
	"github.com/ribukumar49/leave-management-mini/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, employeeRepo, outboxRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandlerWithRedis(employeeService, rdb)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(20, 40))
	api.Use(middleware.Idempotency(rdb))
	{
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler)
	}

	return nil
}
