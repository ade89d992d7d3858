package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/handlers"
	"github.com/taskflow-dev/taskflow/internal/middleware"
)

type Options struct {
	AllowedOrigins []string
	Logger         zerolog.Logger
}

func NewRouter(h *handlers.Handler, tokens *auth.TokenIssuer, users middleware.UserLookup, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(opts.Logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireAuth := middleware.AuthMiddleware(tokens, users)

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", h.Register)
			authRoutes.POST("/login", h.Login)
			authRoutes.POST("/logout", h.Logout)
			authRoutes.GET("/me", requireAuth, h.Me)
			authRoutes.DELETE("/me", requireAuth, h.DeleteAccount)
		}

		projects := api.Group("/projects", requireAuth)
		{
			projects.POST("", h.CreateProject)
			projects.GET("", h.ListProjects)
			projects.GET("/:project_id", h.GetProject)
			projects.DELETE("/:project_id", h.DeleteProject)

			projects.GET("/:project_id/collaborators", h.ListCollaborators)
			projects.POST("/:project_id/collaborators", h.AddCollaborator)
			projects.DELETE("/:project_id/collaborators/:user_id", h.RemoveCollaborator)

			projects.GET("/:project_id/tasks", h.ListTasks)
			projects.POST("/:project_id/tasks", h.CreateTask)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.GET("/:task_id", h.GetTask)
			tasks.PATCH("/:task_id", h.UpdateTask)
			tasks.DELETE("/:task_id", h.DeleteTask)

			tasks.GET("/:task_id/comments", h.ListComments)
			tasks.POST("/:task_id/comments", h.AddComment)
		}

		admin := api.Group("/admin", requireAuth)
		{
			admin.GET("/users", h.ListUsers)
		}
	}

	return r
}
