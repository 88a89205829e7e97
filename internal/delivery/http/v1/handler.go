package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskswift/internal/services"
)

type Handler interface {
	HandleRequestID(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleGetStats(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleToggleTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleReloadTasks(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	tasks  services.TaskService
	now    func() time.Time

	// Bearer tokens are only checked when jwtSigningKey is set.
	jwtIssuer     string
	jwtSigningKey []byte
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
	jwtIssuer string,
	jwtSigningKey string,
) Handler {
	return &handlerImpl{
		logger:        logger,
		tasks:         taskService,
		now:           time.Now,
		jwtIssuer:     jwtIssuer,
		jwtSigningKey: []byte(jwtSigningKey),
	}
}

// RegisterRoutes mounts the task API under router.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router = router.Group("/api/v1")
	router.Use(h.HandleRequestID)

	tasksRouter := router.Group("/tasks")
	tasksRouter.Use(h.HandleAuthMiddleware)
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("/stats", h.HandleGetStats)
	tasksRouter.POST("/reload", h.HandleReloadTasks)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.PATCH("/:id/complete", h.HandleToggleTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
}
