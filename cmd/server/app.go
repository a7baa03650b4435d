package main

import (
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/diewo77/go-videoshop/auth"
	"github.com/diewo77/go-videoshop/gate"
	"github.com/diewo77/go-videoshop/httpx"
	"github.com/diewo77/go-videoshop/internal/config"
	"github.com/diewo77/go-videoshop/internal/handlers"
	"github.com/diewo77/go-videoshop/internal/policy"
	"github.com/diewo77/go-videoshop/internal/queries"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	signer *auth.Signer
	guard  *policy.Guard
}

// crudHandler is implemented by every resource handler.
type crudHandler interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB, cfg *config.Config) (*App, error) {
	signer := auth.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	table := policy.DefaultTable(cfg.App.ProtectReads)
	log.Printf("access policy: %v", table.Rules())

	httpx.SetExposeStoreErrors(cfg.App.Dev)
	auth.SetUserVerifier(policy.NewCachedVerifier(policy.DBUserLookup(db), time.Minute).Verify)

	engine := gin.New()
	engine.MaxMultipartMemory = cfg.Uploads.MaxBytes
	engine.Use(gin.Recovery(), withLogging(), cors.New(corsConfig(cfg.CORS)))

	app := &App{
		engine: engine,
		db:     db,
		cfg:    cfg,
		signer: signer,
		guard:  policy.NewGuard(table, signer),
	}
	if err := app.setupRoutes(); err != nil {
		return nil, err
	}
	return app, nil
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.engine.ServeHTTP(w, r)
}

func (a *App) setupRoutes() error {
	xdb, err := queries.FromGorm(a.db)
	if err != nil {
		return err
	}

	a.engine.GET("/health", handlers.Health)
	a.engine.GET("/healthz", handlers.Healthz(a.db))
	a.engine.Static("/uploads", a.cfg.Uploads.Dir)

	api := a.engine.Group("/api")

	ah := handlers.NewAuthHandler(a.db, a.signer)
	api.POST("/auth/register", ah.Register)
	api.POST("/auth/login", ah.Login)
	api.GET("/auth/me", a.guard.Authenticated(), ah.Me)

	uploads := handlers.Uploader{Dir: a.cfg.Uploads.Dir, MaxBytes: a.cfg.Uploads.MaxBytes}
	a.resource(api, policy.ResourceClients, handlers.NewClientHandler(a.db))
	a.resource(api, policy.ResourceProducts, handlers.NewProductHandler(a.db, uploads, a.cfg.Uploads.PhotoPrefix()))
	a.resource(api, policy.ResourceVendors, handlers.NewVendorHandler(a.db))
	a.resource(api, policy.ResourceSales, handlers.NewSaleHandler(a.db, queries.NewSaleQueryRepository(xdb)))
	purchases := handlers.NewPurchaseHandler(a.db, queries.NewPurchaseQueryRepository(xdb))
	a.resource(api, policy.ResourcePurchases, purchases)
	api.GET("/"+policy.ResourceClients+"/:id/achats", a.guard.For(policy.ResourcePurchases, gate.ActionList), purchases.ListByClient)

	api.GET("/dashboard", a.guard.For(policy.ResourceDashboard, gate.ActionView), handlers.NewDashboardHandler(a.db).Show)
	return nil
}

// resource mounts the five CRUD routes of a resource, each behind the guard.
func (a *App) resource(api *gin.RouterGroup, name string, h crudHandler) {
	g := api.Group("/" + name)
	g.GET("", a.guard.For(name, gate.ActionList), h.List)
	g.GET("/:id", a.guard.For(name, gate.ActionView), h.Get)
	g.POST("", a.guard.For(name, gate.ActionCreate), h.Create)
	g.PUT("/:id", a.guard.For(name, gate.ActionUpdate), h.Update)
	g.DELETE("/:id", a.guard.For(name, gate.ActionDelete), h.Delete)
}

func corsConfig(c config.CORSConfig) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(c.Origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = c.Origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// withLogging adds request logging middleware.
func withLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
