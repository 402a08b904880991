package router

import (
	"time"

	"correcaja/internal/config"
	"correcaja/internal/handler"
	"correcaja/internal/infra"
	"correcaja/internal/middleware"
	"correcaja/internal/repository"
	"correcaja/internal/service"
	"correcaja/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
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
	cajaRepo := repository.NewCajaRepository(db)
	transaccionRepo := repository.NewTransaccionRepository(db)
	canalRepo := repository.NewCanalRepository(db)
	configuracionRepo := repository.NewConfiguracionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	canalSvc := service.NewCanalService(canalRepo)
	comisionSvc := service.NewComisionService(configuracionRepo)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	cajaSvc := service.NewCajaService(cajaRepo, transaccionRepo, usuarioRepo, canalSvc, dispatcher, cfg.NombreNegocio)
	transaccionSvc := service.NewTransaccionService(transaccionRepo, cajaRepo, canalSvc, comisionSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	cajaH := handler.NewCajaHandler(cajaSvc, cfg.PDFStoragePath)
	transaccionesH := handler.NewTransaccionesHandler(transaccionSvc)
	canalesH := handler.NewCanalesHandler(canalSvc)
	comisionesH := handler.NewComisionesHandler(comisionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Static category table — any authenticated user
		v1.GET("/categorias", handler.Categorias)

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.POST("/cerrar", cajaH.Cerrar)
			caja.GET("/activa", cajaH.Activa)
			caja.GET("/historial", cajaH.Historial)
			caja.GET("/:id/resumen", cajaH.Resumen)
			caja.GET("/:id/reporte", cajaH.Reporte)
			caja.GET("/:id/transacciones", transaccionesH.Listar)
		}

		trans := v1.Group("/transacciones")
		{
			trans.POST("", transaccionesH.Crear)
			trans.POST("/:id/anular", transaccionesH.Anular)
			trans.POST("/comision-sugerida", transaccionesH.ComisionSugerida)
		}

		canales := v1.Group("/canales")
		{
			canales.GET("", canalesH.Listar)
			canales.POST("", canalesH.Crear)
			canales.PUT("/:id", canalesH.Actualizar)
			canales.DELETE("/:id", canalesH.Eliminar)
			canales.PUT("/:id/comision", canalesH.EstablecerComision)
			canales.DELETE("/:id/comision", canalesH.QuitarComision)
		}

		comisiones := v1.Group("/comisiones")
		{
			comisiones.GET("", comisionesH.Obtener)
			comisiones.PUT("", comisionesH.Actualizar)
		}

		// Usuarios — administrador only
		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
