// Package server assembles the HTTP engine from its repositories, services and handlers.
package server

import (
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/qa-forum-api/internal/authz"
	"github.com/yukikurage/qa-forum-api/internal/cache"
	"github.com/yukikurage/qa-forum-api/internal/constants"
	"github.com/yukikurage/qa-forum-api/internal/handlers"
	"github.com/yukikurage/qa-forum-api/internal/logging"
	"github.com/yukikurage/qa-forum-api/internal/middleware"
	"github.com/yukikurage/qa-forum-api/internal/repository"
	"github.com/yukikurage/qa-forum-api/internal/services"
	"gorm.io/gorm"
)

// Deps are the long-lived resources the router is built from. Cache and Suggester
// may be nil.
type Deps struct {
	DB        *gorm.DB
	Sessions  sessions.Store
	Logger    *slog.Logger
	Registry  *prometheus.Registry
	Cache     *cache.Store
	Suggester *services.TagSuggester
	PageSize  int
}

// NewRouter wires every route onto a new gin engine.
func NewRouter(deps Deps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = logging.Discard()
	}
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	userRepo := repository.NewUserRepository(deps.DB)
	categoryRepo := repository.NewCategoryRepository(deps.DB)
	tagRepo := repository.NewTagRepository(deps.DB)
	questionRepo := repository.NewQuestionRepository(deps.DB)
	answerRepo := repository.NewAnswerRepository(deps.DB)

	authService := services.NewAuthService(userRepo, log)
	userService := services.NewUserService(userRepo, authService, log)
	categoryService := services.NewCategoryService(categoryRepo, deps.Cache, log)
	tagService := services.NewTagService(tagRepo, deps.Cache, log)
	questionService := services.NewQuestionService(questionRepo, categoryRepo, tagRepo, deps.Suggester, log)
	answerService := services.NewAnswerService(answerRepo, log)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, deps.PageSize)
	categoryHandler := handlers.NewCategoryHandler(categoryService, deps.PageSize)
	tagHandler := handlers.NewTagHandler(tagService, deps.PageSize)
	questionHandler := handlers.NewQuestionHandler(questionService, answerService, categoryService, deps.PageSize)
	answerHandler := handlers.NewAnswerHandler(answerService)

	metrics := middleware.NewMetrics(registry)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(log))
	r.Use(metrics.Middleware())

	r.GET("/health", handlers.Health(deps.DB))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.Use(sessions.Sessions(constants.SessionCookieName, deps.Sessions))
	api.Use(middleware.LoadActor(authService, log))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PUT("/me", middleware.RequireAuth(), authHandler.UpdateProfile)
		}

		question := api.Group("/question")
		{
			question.GET("", questionHandler.List)
			question.POST("", questionHandler.Create)
			question.GET("/category/:id", questionHandler.ListByCategory)
			question.GET("/:id", middleware.LoadQuestion(questionService, "id"), questionHandler.Show)
			question.PUT("/:id", middleware.RequireQuestionAccess(questionService, authz.ActionEdit), questionHandler.Update)
			question.DELETE("/:id", middleware.RequireQuestionAccess(questionService, authz.ActionDelete), questionHandler.Delete)
			question.PUT("/:id/tags/:tag_id", middleware.RequireQuestionAccess(questionService, authz.ActionEdit), questionHandler.AddTag)
			question.DELETE("/:id/tags/:tag_id", middleware.RequireQuestionAccess(questionService, authz.ActionEdit), questionHandler.RemoveTag)
			question.POST("/:id/suggest-tags", middleware.RequireQuestionAccess(questionService, authz.ActionEdit), questionHandler.SuggestTags)
		}

		answer := api.Group("/answer")
		{
			answer.POST("/:question_id", middleware.LoadQuestion(questionService, "question_id"), answerHandler.Create)
			answer.GET("/:id", middleware.LoadAnswer(answerService), answerHandler.Show)
			answer.PUT("/:id", middleware.RequireAnswerAccess(answerService, authz.ActionEdit), answerHandler.Update)
			answer.DELETE("/:id", middleware.RequireAnswerAccess(answerService, authz.ActionDelete), answerHandler.Delete)
			answer.PUT("/:id/mark", middleware.RequireAnswerAccess(answerService, authz.ActionAward), answerHandler.Mark)
			answer.PUT("/:id/unmark", middleware.RequireAnswerAccess(answerService, authz.ActionDeaward), answerHandler.Unmark)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Show)
			categories.POST("", middleware.RequireAdmin(), categoryHandler.Create)
			categories.PUT("/:id", middleware.RequireAdmin(), categoryHandler.Update)
			categories.DELETE("/:id", middleware.RequireAdmin(), categoryHandler.Delete)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.List)
			tags.GET("/:id", tagHandler.Show)
			tags.POST("", middleware.RequireAdmin(), tagHandler.Create)
			tags.PUT("/:id", middleware.RequireAdmin(), tagHandler.Update)
			tags.DELETE("/:id", middleware.RequireAdmin(), tagHandler.Delete)
		}

		users := api.Group("/user")
		users.Use(middleware.RequireAdmin())
		{
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Show)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}
	}

	return r
}
