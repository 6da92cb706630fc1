package router

import (
	"time"

	"napos/internal/config"
	"napos/internal/handler"
	"napos/internal/middleware"
	"napos/internal/repository"
	"napos/internal/service"
	"napos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) (*gin.Engine, service.NotificacionService) {
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
	productoRepo := repository.NewProductoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	historialRepo := repository.NewHistorialPrecioRepository(db)
	notificacionRepo := repository.NewNotificacionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	precioSvc := service.NewPrecioService(productoRepo, proveedorRepo, historialRepo, rdb)
	creditoSvc := service.NewCreditoService(clienteRepo)
	cajaSvc := service.NewCajaService(cajaRepo, ventaRepo)
	notificacionSvc := service.NewNotificacionService(notificacionRepo, productoRepo, dispatcher)
	ventaSvc := service.NewVentaService(
		ventaRepo, productoRepo, clienteRepo, usuarioRepo, cajaRepo,
		creditoSvc, notificacionSvc, cfg.NegocioNombre, cfg.TicketStoragePath,
	)
	compraSvc := service.NewCompraService(compraRepo, productoRepo, proveedorRepo, usuarioRepo, precioSvc)
	proveedorSvc := service.NewProveedorService(proveedorRepo, productoRepo, historialRepo, precioSvc)
	productoSvc := service.NewProductoService(productoRepo, proveedorRepo, historialRepo)
	clienteSvc := service.NewClienteService(clienteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	cajaH := handler.NewCajaHandler(cajaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	productosH := handler.NewProductosHandler(productoSvc, precioSvc)
	clientesH := handler.NewClientesHandler(clienteSvc, creditoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioRepo)
	notificacionesH := handler.NewNotificacionesHandler(notificacionSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	// Price check for the scanner kiosk — read-only
	r.GET("/v1/precio/:barcode", consultaH.GetPrecioPorBarcode)

	v1 := r.Group("/v1")
	{
		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.POST("/cerrar", cajaH.Cerrar)
			caja.GET("/abierta", cajaH.Abierta)
			caja.GET("/historial", cajaH.Listar)
		}

		v1.POST("/ventas", ventasH.Registrar)
		v1.GET("/ventas", ventasH.Listar)
		v1.GET("/ventas/:id", ventasH.Obtener)
		v1.GET("/ventas/:id/ticket", ventasH.Ticket)
		v1.DELETE("/ventas/:id", ventasH.Anular)

		v1.POST("/compras", comprasH.Registrar)
		v1.GET("/compras", comprasH.Listar)
		v1.GET("/compras/:id", comprasH.Obtener)

		prods := v1.Group("/productos")
		{
			prods.POST("", productosH.Crear)
			prods.GET("", productosH.Listar)
			prods.GET("/:id", productosH.ObtenerPorID)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
			prods.GET("/:id/historial-precios", productosH.Historial)
			prods.PATCH("/:id/ajuste", productosH.AplicarAjuste)
			prods.PATCH("/:id/costo", productosH.ActualizarCosto)
			prods.PATCH("/:id/proveedor", productosH.CambiarProveedor)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Desactivar)
			clientes.PATCH("/:id/reactivar", clientesH.Reactivar)
			clientes.POST("/:id/abonos", clientesH.Abonar)
		}

		prov := v1.Group("/proveedores")
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.ObtenerPorID)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Eliminar)
			prov.PATCH("/:id/porcentaje", proveedoresH.ActualizarPorcentaje)
		}

		usuarios := v1.Group("/usuarios")
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
		}

		notifs := v1.Group("/notificaciones")
		{
			notifs.GET("", notificacionesH.Listar)
			notifs.PATCH("/:id/leida", notificacionesH.MarcarLeida)
			notifs.POST("/escanear", notificacionesH.Escanear)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, notificacionSvc
}
