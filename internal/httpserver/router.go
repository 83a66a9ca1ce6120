package httpserver

import (
	"context"
	"time"

	"portfoliohub/internal/handler"
	"portfoliohub/internal/service/auth"
	"portfoliohub/pkg/mq"
	"portfoliohub/pkg/rbac"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handlers 路由用到的全部 handler
type Handlers struct {
	Auth      *handler.AuthHandler
	Project   *handler.ProjectHandler
	Dashboard *handler.DashboardHandler
	Directory *handler.DirectoryHandler
	Settings  *handler.SettingsHandler
}

// Backends 可选的外部依赖，nil 表示未启用，不参与 readyz 检查
type Backends struct {
	Publisher *mq.Publisher
	Redis     *redis.Client
}

func NewRouter(h Handlers, authService *auth.Service, backends Backends, logger *zap.Logger) *gin.Engine {
	r := gin.Default()
	r.Use(TraceMiddleware(), RequestLogger(logger))

	// Health endpoints (放在最前面)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if backends.Redis != nil {
			if err := backends.Redis.Ping(ctx).Err(); err != nil {
				c.JSON(500, gin.H{"status": "redis_not_ready", "error": err.Error()})
				return
			}
		}

		if backends.Publisher != nil && !backends.Publisher.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/login", h.Auth.Login)

	// Protected
	api := r.Group("/")
	api.Use(AuthMiddleware(authService))
	{
		api.POST("/logout", h.Auth.Logout)
		api.GET("/me", h.Auth.Me)

		projects := api.Group("/projects")
		projects.GET("", RequirePermission(rbac.PermissionReadProject), h.Project.ListProjects)
		projects.POST("", RequirePermission(rbac.PermissionCreateProject), h.Project.CreateProject)
		projects.GET("/selection", RequirePermission(rbac.PermissionReadProject), h.Project.SelectedProject)
		projects.PUT("/selection", RequirePermission(rbac.PermissionReadProject), h.Project.SelectProject)
		projects.GET("/:id", RequirePermission(rbac.PermissionReadProject), h.Project.GetProject)
		projects.PATCH("/:id", RequirePermission(rbac.PermissionUpdateProject), h.Project.UpdateProject)
		projects.DELETE("/:id", RequirePermission(rbac.PermissionDeleteProject), h.Project.DeleteProject)

		dashboard := api.Group("/dashboard", RequirePermission(rbac.PermissionReadProject))
		dashboard.GET("/budget", h.Dashboard.Budget)
		dashboard.GET("/workforce", h.Dashboard.Workforce)
		dashboard.GET("/metrics", h.Dashboard.Metrics)

		users := api.Group("/users")
		users.GET("", RequirePermission(rbac.PermissionReadUser), h.Directory.ListUsers)
		users.POST("", RequirePermission(rbac.PermissionCreateUser), h.Directory.CreateUser)
		users.PATCH("/:id", RequirePermission(rbac.PermissionUpdateUser), h.Directory.UpdateUser)
		users.DELETE("/:id", RequirePermission(rbac.PermissionDeleteUser), h.Directory.DeleteUser)
		users.POST("/:id/reset-password", RequirePermission(rbac.PermissionAdminUsers), h.Directory.ResetPassword)

		departments := api.Group("/departments")
		departments.GET("", h.Directory.ListDepartments)
		departments.POST("", RequirePermission(rbac.PermissionAdminDepartments), h.Directory.CreateDepartment)
		departments.PATCH("/:id", RequirePermission(rbac.PermissionAdminDepartments), h.Directory.UpdateDepartment)
		departments.DELETE("/:id", RequirePermission(rbac.PermissionAdminDepartments), h.Directory.DeleteDepartment)

		settings := api.Group("/settings")
		settings.GET("", h.Settings.GetSettings)
		settings.GET("/columns/visible", h.Settings.VisibleColumns)

		config := settings.Group("", RequirePermission(rbac.PermissionAdminConfig))
		config.PUT("/phases", h.Settings.ReplacePhases)
		config.PUT("/columns", h.Settings.ReplaceColumns)
		config.POST("/phases/:id/move", h.Settings.MovePhase)
		config.POST("/columns/:key/move", h.Settings.MoveColumn)
		config.POST("/columns/:key/toggle", h.Settings.ToggleColumn)

		fiscal := settings.Group("/fiscal", RequirePermission(rbac.PermissionAdminFiscal))
		fiscal.PUT("", h.Settings.ReplaceFiscal)
		fiscal.POST("/quarters/:quarter/start", h.Settings.SetQuarterStart)
		fiscal.POST("/quarters/:quarter/end", h.Settings.SetQuarterEnd)
	}

	return r
}
