package main

import (
	"log"
	"strings"

	"mobilya-backend/internal/auth"
	"mobilya-backend/internal/calc"
	"mobilya-backend/internal/catalog"
	"mobilya-backend/internal/config"
	"mobilya-backend/internal/database"
	"mobilya-backend/internal/models"
	"mobilya-backend/internal/reports"
	"mobilya-backend/internal/schedule"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatal(err)
	}

	store := catalog.NewStore(db)
	calculator := calc.NewCalculator(db)
	scheduler := schedule.NewService(db)
	aggregator := reports.NewAggregator(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg, db))
	api.Post("/auth/login", auth.LoginHandler(cfg, db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Admin route'ları: katalog yazma işlemleri
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/product-types", catalog.CreateProductTypeHandler(store))
	adminRoutes.Delete("/product-types/:id", catalog.DeleteProductTypeHandler(store))
	adminRoutes.Post("/materials", catalog.CreateMaterialHandler(store))
	adminRoutes.Delete("/materials/:id", catalog.DeleteMaterialHandler(store))
	adminRoutes.Post("/workshops", catalog.CreateWorkshopHandler(store))
	adminRoutes.Delete("/workshops/:id", catalog.DeleteWorkshopHandler(store))

	adminRoutes.Post("/products", catalog.CreateProductHandler(store))
	adminRoutes.Put("/products/:id", catalog.UpdateProductHandler(store))
	adminRoutes.Delete("/products/:id", catalog.DeleteProductHandler(store))
	adminRoutes.Post("/products/batch-delete", catalog.BatchDeleteProductsHandler(store))

	// Ortak (auth gerektiren) route'lar

	// Katalog okuma
	protected.Get("/product-types", catalog.ListProductTypesHandler(store))
	protected.Get("/materials", catalog.ListMaterialsHandler(store))
	protected.Get("/workshops", catalog.ListWorkshopsHandler(store))
	protected.Get("/products", catalog.ListProductsHandler(store))
	protected.Get("/products/:id", catalog.GetProductHandler(store))

	// Üretim planı (admin ve planner yazabilir)
	protected.Post("/products/:id/schedule",
		auth.RequireRole(models.RoleAdmin, models.RolePlanner),
		schedule.AssignWorkshopHandler(scheduler))
	protected.Get("/products/:id/schedule", schedule.GetScheduleHandler(scheduler))

	// Hammadde hesabı
	protected.Post("/calculations/material-needed", calc.MaterialNeededHandler(calculator))

	// Raporlama
	protected.Get("/reports/statistics", reports.StatisticsHandler(aggregator))
	protected.Get("/export/:type", reports.ExportHandler(aggregator))

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
