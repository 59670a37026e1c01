package router

import (
	"time"

	"doorquote/internal/config"
	"doorquote/internal/handler"
	"doorquote/internal/infra"
	"doorquote/internal/middleware"
	"doorquote/internal/paginator"
	"doorquote/internal/pricing"
	"doorquote/internal/repository"
	"doorquote/internal/service"
	"doorquote/internal/store"
	"doorquote/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Store/Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, st *store.CatalogStore) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	calc := pricing.NewCalculator(cfg.TaxRate)
	pg := paginator.New(cfg.PageCapacity, calc)
	budgetFiles := infra.NewBudgetFileStore(cfg.BudgetsPath)
	genPDF := func(pages []paginator.Page) (string, error) {
		return infra.GenerateBudgetPDF(pages, cfg.PDFStoragePath)
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	presupuestoRepo := repository.NewPresupuestoRepository(db)

	// Worker dispatcher, injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(cfg)
	catalogoSvc := service.NewCatalogoService(st, calc)
	presupuestoSvc := service.NewPresupuestoService(st, presupuestoRepo, budgetFiles)
	documentoSvc := service.NewDocumentoService(st, pg, genPDF, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	productosH := handler.NewProductosHandler(catalogoSvc)
	presupuestosH := handler.NewPresupuestosHandler(presupuestoSvc)
	documentoH := handler.NewDocumentoHandler(documentoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/catalogo", catalogoH.Estado)
		v1.POST("/catalogo/reset", catalogoH.Reset)
		v1.PUT("/catalogo/cliente", catalogoH.SetCliente)
		v1.PUT("/catalogo/notas", catalogoH.SetNotas)
		v1.PUT("/catalogo/edicion", catalogoH.SetEdicion)

		prods := v1.Group("/productos")
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.POST("/:id/mover", productosH.Mover)
			prods.POST("/totales", productosH.Totales)
		}

		doc := v1.Group("/documento")
		{
			doc.GET("/paginas", documentoH.Paginas)
			doc.GET("/pdf", documentoH.DescargarPDF)
			doc.POST("/enviar", documentoH.Enviar)
		}

		pres := v1.Group("/presupuestos")
		{
			pres.POST("", presupuestosH.Guardar)
			pres.GET("", presupuestosH.Listar)
			pres.GET("/abrir", presupuestosH.Abrir)
			pres.POST("/importar", presupuestosH.Importar)
			pres.GET("/:id/descargar", presupuestosH.Descargar)
			pres.POST("/:id/importar", presupuestosH.ImportarArchivado)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
