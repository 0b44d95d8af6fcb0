package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/stockpilot/inventory-admin/internal/activitylog"
	"github.com/stockpilot/inventory-admin/internal/authz"
	"github.com/stockpilot/inventory-admin/internal/config"
	"github.com/stockpilot/inventory-admin/internal/handlers"
	infraRepo "github.com/stockpilot/inventory-admin/internal/infra/repository"
	"github.com/stockpilot/inventory-admin/internal/middleware"
	"github.com/stockpilot/inventory-admin/internal/models"
	ucStock "github.com/stockpilot/inventory-admin/internal/usecase/stock"
	"github.com/stockpilot/inventory-admin/internal/validators"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	validators.RegisterBindings()

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================

	recorder := activitylog.New(db)

	registry := activitylog.NewRegistry()
	registry.Register("item", activitylog.ModelResolver[models.Item]())
	registry.Register("category", activitylog.ModelResolver[models.Category]())
	registry.Register("room", activitylog.ModelResolver[models.Room]())
	registry.Register("transaction", activitylog.ModelResolver[models.StockTransaction]())
	registry.Register("user", activitylog.ModelResolver[models.User]())

	var cache authz.Cache
	if rdb != nil {
		cache = authz.NewRedisCache(rdb)
	}

	checker := authz.NewChecker(authz.NewGormStore(db), cache)
	gate := authz.NewGate(checker)

	stockRepo := infraRepo.NewStockGormRepository(db, recorder)

	// ======================================================
	// USE CASES (STOCK)
	// ======================================================

	receiveUC := ucStock.NewReceiveStock(stockRepo)
	issueUC := ucStock.NewIssueStock(stockRepo)
	transferUC := ucStock.NewTransferStock(stockRepo)

	// ======================================================
	// HANDLERS
	// ======================================================

	authHandler := handlers.NewAuthHandler(db, cfg, recorder)
	meHandler := handlers.NewMeHandler(db)

	itemHandler := handlers.NewItemHandler(db, gate, recorder)
	categoryHandler := handlers.NewCategoryHandler(db, gate, recorder)
	roomHandler := handlers.NewRoomHandler(db, gate, recorder)
	userHandler := handlers.NewUserHandler(db, gate, checker, recorder)
	roleHandler := handlers.NewRoleHandler(db, checker)

	transactionHandler := handlers.NewTransactionHandler(
		db,
		gate,
		recorder,
		receiveUC,
		issueUC,
		transferUC,
	)

	activityLogsHandler := handlers.NewActivityLogsHandler(db, gate, registry)

	// ======================================================
	// API (JSON)
	// ======================================================

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// ITEMS
			// ------------------------------
			secured.GET("/items", itemHandler.List)
			secured.POST("/items", itemHandler.Create)
			secured.GET("/items/:id", itemHandler.Get)
			secured.PATCH("/items/:id", itemHandler.Update)
			secured.DELETE("/items/:id", itemHandler.Delete)
			secured.GET("/items/:id/activities", itemHandler.Activities)

			// ------------------------------
			// CATEGORIES / ROOMS
			// ------------------------------
			secured.GET("/categories", categoryHandler.List)
			secured.POST("/categories", categoryHandler.Create)
			secured.PATCH("/categories/:id", categoryHandler.Update)
			secured.DELETE("/categories/:id", categoryHandler.Delete)

			secured.GET("/rooms", roomHandler.List)
			secured.POST("/rooms", roomHandler.Create)
			secured.PATCH("/rooms/:id", roomHandler.Update)
			secured.DELETE("/rooms/:id", roomHandler.Delete)

			// ------------------------------
			// TRANSACTIONS
			// ------------------------------
			secured.GET("/transactions", transactionHandler.List)
			secured.POST("/transactions", transactionHandler.Create)
			secured.GET("/transactions/:id", transactionHandler.Get)
			secured.DELETE("/transactions/:id", transactionHandler.Delete)
			secured.PATCH("/transactions/:id/restore", transactionHandler.Restore)
			secured.DELETE("/transactions/:id/force", transactionHandler.ForceDelete)

			// ------------------------------
			// USERS / ROLES
			// ------------------------------
			secured.GET("/users", userHandler.List)
			secured.POST("/users", userHandler.Create)
			secured.GET("/users/:id", userHandler.Get)
			secured.PATCH("/users/:id", userHandler.Update)
			secured.DELETE("/users/:id", userHandler.Delete)
			secured.PUT("/users/:id/roles", userHandler.SetRoles)

			secured.GET("/roles", roleHandler.List)
			secured.POST("/roles", roleHandler.Create)
			secured.DELETE("/roles/:id", roleHandler.Delete)
			secured.PUT("/roles/:id/permissions", roleHandler.SetPermissions)
			secured.GET("/permissions", roleHandler.ListPermissions)

			// ------------------------------
			// ACTIVITY LOG
			// ------------------------------
			secured.GET("/activity-logs", activityLogsHandler.List)
			secured.GET("/activity-logs/:id/subject", activityLogsHandler.Subject)
		}
	}
}
