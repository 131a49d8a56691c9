package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/application/upload"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	FeedUC      *usecase.FeedUseCase
	OrderUC     *ordering.OrderUseCase
	ReceiptUC   *ordering.ReceiptUseCase
	UploadUC    *upload.UseCase
	JWTSecret   string
	ServiceName string
	Driver      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName, "driver": deps.Driver})
	})

	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret, deps.AuthUC)
	admin := RequireAdmin()

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/admin/login", authHandler.AdminLogin)
	authGroup.Get("/profile", authMW, authHandler.Profile)

	// Users: rutas fijas antes de /:id
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC)
	users.Post("/", userHandler.Create)
	users.Put("/reset-password", userHandler.ResetPassword)
	users.Delete("/me", authMW, userHandler.DeleteMe)
	users.Get("/", authMW, admin, userHandler.List)
	users.Get("/:id", authMW, userHandler.GetByID)
	users.Put("/:id", authMW, userHandler.Update)
	users.Delete("/:id", authMW, admin, userHandler.Delete)

	// Products: lectura pública, escritura admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.FeedUC)
	products.Get("/feed.xml", productHandler.Feed)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authMW, admin, productHandler.Create)
	products.Put("/:id", authMW, admin, productHandler.Update)
	products.Delete("/:id", authMW, admin, productHandler.Delete)

	// Orders (protegido)
	orders := api.Group("/orders", authMW)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", admin, orderHandler.List)
	orders.Get("/user/:userId", orderHandler.ListByUser)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", admin, orderHandler.UpdateStatus)
	orders.Delete("/:id", admin, orderHandler.Delete)

	// Uploads (protegido)
	uploads := api.Group("/upload", authMW)
	uploadHandler := NewUploadHandler(deps.UploadUC)
	uploads.Post("/", uploadHandler.Single)
	uploads.Post("/multiple", uploadHandler.Multiple)
}
