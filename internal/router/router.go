package router

import (
	"time"

	"github.com/cortese1982/Promipointssystemdevelopment/internal/config"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/handler"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/middleware"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/repository"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/service"
	"github.com/cortese1982/Promipointssystemdevelopment/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	presupuestoRepo := repository.NewPresupuestoRepository(db)
	reconRepo := repository.NewReconocimientoRepository(db)
	configRepo := repository.NewConfigRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	configSvc := service.NewConfigService(configRepo, rdb)
	authSvc := service.NewAuthService(usuarioRepo, configSvc, cfg)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	puntosSvc := service.NewPuntosService(presupuestoRepo, reconRepo, usuarioRepo, categoriaRepo, configRepo, dispatcher, rdb)
	reporteSvc := service.NewReporteService(reconRepo, presupuestoRepo, usuarioRepo, categoriaRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	reconH := handler.NewReconocimientosHandler(puntosSvc)
	perfilH := handler.NewPerfilHandler(authSvc, puntosSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	configH := handler.NewConfigHandler(configSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Login screen branding — no auth required, the frontend needs it
	// before any session exists
	r.GET("/v1/config/login", configH.LoginScreen)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Any authenticated employee
		empleados := middleware.RequireRole("empleado", "people", "superadmin")

		v1.GET("/perfil", empleados, perfilH.Perfil)
		v1.GET("/companeros", empleados, perfilH.Companeros)
		v1.GET("/presupuesto", empleados, reconH.Presupuesto)

		v1.POST("/reconocimientos", empleados, reconH.Crear)
		v1.GET("/reconocimientos/recibidos", empleados, reconH.Recibidos)
		v1.GET("/reconocimientos/enviados", empleados, reconH.Enviados)

		v1.GET("/categorias", empleados, categoriasH.Listar)
		v1.GET("/config/onboarding", empleados, configH.Onboarding)

		// People team — administration surface
		people := middleware.RequireRole("people", "superadmin")

		reportes := v1.Group("/reportes", people)
		{
			reportes.GET("/:mes", reportesH.Resumen)
			reportes.GET("/:mes/csv", reportesH.ExportCSV)
			reportes.GET("/:mes/pdf", reportesH.ExportPDF)
		}

		usuarios := v1.Group("/usuarios", people)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.GET("/:id", usuariosH.Obtener)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
			usuarios.DELETE("/:id/presupuesto/:mes", reconH.ResetPresupuesto)
		}

		categorias := v1.Group("/categorias", people)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Desactivar)
		}

		v1.GET("/config", people, configH.Obtener)
		v1.PUT("/config", people, configH.Actualizar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
