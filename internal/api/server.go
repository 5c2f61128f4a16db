package api

import (
	"fmt"
	"net/http"

	"eventhorizon/internal/cache"
	"eventhorizon/internal/config"
	"eventhorizon/internal/database"
	"eventhorizon/internal/handlers"
	"eventhorizon/internal/logger"
	"eventhorizon/internal/messaging"
	"eventhorizon/internal/metrics"
	"eventhorizon/internal/middleware"
	"eventhorizon/internal/repository"
	"eventhorizon/internal/search"
	"eventhorizon/internal/service"

	"github.com/gin-gonic/gin"
)

// Server представляет HTTP сервер API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	es       *search.ElasticsearchClient
	services *service.Services
	repos    *repository.Repositories
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config) *Server {
	// Устанавливаем режим Gin
	gin.SetMode(cfg.GinMode)

	// Подключаемся к базе данных
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	// Запускаем миграции
	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Подключаемся к NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	// Кеш Valkey не обязателен: без него работаем напрямую с БД
	valkeyClient, err := cache.NewValkeyClient(cfg.Valkey)
	if err != nil {
		logger.Get().Warn("Valkey unavailable, continuing without cache", "error", err)
		valkeyClient = nil
	}

	// Elasticsearch тоже не обязателен: поиск деградирует до ILIKE по БД
	esClient, err := search.NewElasticsearchClient(cfg.Elasticsearch)
	if err != nil {
		logger.Get().Warn("Elasticsearch unavailable, search falls back to database", "error", err)
		esClient = nil
	}

	// Создаем репозитории
	repos := repository.NewRepositories(db)

	// Создаем сервисы
	services := service.NewServices(repos, natsClient, valkeyClient, esClient)

	// Создаем роутер
	router := gin.New()

	// Применяем middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		valkey:   valkeyClient,
		es:       esClient,
		services: services,
		repos:    repos,
	}

	// Настраиваем роуты
	server.setupRoutes()

	return server
}

// setupRoutes настраивает все API роуты
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services)

	// Публичные роуты аутентификации
	auth := s.router.Group("/auth")
	{
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
	}

	// API routes
	api := s.router.Group("/api")
	// Обязательная Basic Auth для всех API роутов
	api.Use(middleware.BasicAuth(s.repos.Users, s.valkey))
	{
		// Users endpoints
		users := api.Group("/users")
		{
			users.GET("/:id", h.GetUser)
			users.GET("", middleware.RequireAdmin(), h.ListUsers)
			users.DELETE("/:id", middleware.RequireAdmin(), h.DeleteUser)
			users.POST("/:id/roles", middleware.RequireAdmin(), h.GrantRole)
		}

		api.GET("/roles", h.ListRoles)

		// Categories endpoints
		categories := api.Group("/categories")
		{
			categories.GET("", h.ListCategories)
			categories.GET("/:id", h.GetCategory)
			categories.POST("", middleware.RequireAdmin(), h.CreateCategory)
			categories.PUT("/:id", middleware.RequireAdmin(), h.UpdateCategory)
			categories.DELETE("/:id", middleware.RequireAdmin(), h.DeleteCategory)
		}

		// Venues endpoints
		venues := api.Group("/venues")
		{
			venues.GET("", h.ListVenues)
			venues.GET("/:id", h.GetVenue)
			venues.POST("", middleware.RequireAdmin(), h.CreateVenue)
			venues.PUT("/:id", middleware.RequireAdmin(), h.UpdateVenue)
			venues.DELETE("/:id", middleware.RequireAdmin(), h.DeleteVenue)
		}

		// Events endpoints (изменения каталога доступны только админам)
		events := api.Group("/events")
		{
			events.GET("", h.ListEvents)
			events.GET("/active", h.ListActiveEvents)
			events.GET("/:id", h.GetEvent)
			events.GET("/:id/tickets", h.ListEventTickets)
			events.POST("", middleware.RequireAdmin(), h.CreateEvent)
			events.PUT("/:id", middleware.RequireAdmin(), h.UpdateEvent)
			events.DELETE("/:id", middleware.RequireAdmin(), h.DeleteEvent)
		}

		// Tickets endpoints
		tickets := api.Group("/tickets")
		{
			tickets.GET("", h.ListTickets)
			tickets.GET("/:id", h.GetTicket)
			tickets.POST("", middleware.RequireAdmin(), h.CreateTicket)
			tickets.PUT("/:id", middleware.RequireAdmin(), h.UpdateTicket)
			tickets.DELETE("/:id", middleware.RequireAdmin(), h.DeleteTicket)
		}

		// Attendees endpoints
		attendees := api.Group("/attendees")
		{
			attendees.POST("", h.RegisterAttendee)
			attendees.GET("/:id", h.GetAttendee)
			attendees.PATCH("/:id/status", h.UpdateAttendeeStatus)
			attendees.PATCH("/:id/cancel", h.CancelAttendee)
			attendees.GET("/user/:id", h.ListUserAttendees)
			attendees.GET("/event/:id", h.ListEventAttendees)
			attendees.GET("/event/:id/stats", h.GetEventAttendeeStats)
		}
	}

	// Health check endpoint
	s.router.GET("/health", s.healthCheck)

	// Prometheus metrics
	s.router.GET("/metrics", metrics.Handler())
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	status := "ok"
	checks := gin.H{}

	dbHealth := s.db.HealthCheck(c.Request.Context())
	checks["database"] = dbHealth.Status
	if dbHealth.Status != "healthy" {
		status = "degraded"
	}

	if s.es != nil {
		if err := s.es.HealthCheck(c.Request.Context()); err != nil {
			status = "degraded"
			checks["elasticsearch"] = err.Error()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"service": "eventhorizon-api",
		"version": "1.0.0",
		"checks":  checks,
	})
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			logger.Get().Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
