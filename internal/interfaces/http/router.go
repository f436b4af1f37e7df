package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/expiry-monitor/internal/application/auth"
	"github.com/tu-usuario/expiry-monitor/internal/application/usecase"
	"github.com/tu-usuario/expiry-monitor/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *usecase.CategoryUseCase
	ItemUC     *usecase.ItemUseCase
	JWTSecret  string
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Usuarios (público)
	users := api.Group("/users")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	users.Post("/register", authHandler.Register)
	users.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Categorías (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Log)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Productos (protegido). Las rutas fijas van antes de /:id para que
	// "check" y "expiring" no se capturen como un id.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ItemUC, deps.Log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/check", productHandler.Check)
	products.Get("/expiring/:days?", productHandler.Expiring)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id/append", productHandler.Append)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
}
