package FiberConfig

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"

	"Imperyo/Controllers"
	"Imperyo/Models"
	"Imperyo/Queries"
	"Imperyo/Store"
	"Imperyo/middleware"
)

// Deps are the shared collaborators the screens operate on.
type Deps struct {
	State     *Models.AppState
	Gateway   *Store.Gateway
	Commands  *Models.Commands
	BackupDir string
}

// SetupRoutes registers every screen endpoint.
func SetupRoutes(app *fiber.App, deps Deps) {
	// Initialize handlers
	orderHandler := Controllers.NewOrderHandler(deps.Commands, deps.State)
	expenseHandler := Controllers.NewExpenseHandler(deps.Commands, deps.State)
	summaryHandler := Controllers.NewSummaryHandler(deps.State)
	prospectHandler := Controllers.NewProspectHandler(deps.State, deps.Gateway)
	configHandler := Controllers.NewConfigHandler(deps.State)
	backupHandler := Controllers.NewBackupHandler(deps.State, deps.Gateway, deps.BackupDir)

	// API group
	api := app.Group("/api")

	// Order routes
	orders := api.Group("/orders")
	orders.Get("/", orderHandler.GetOrders)
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/:year/:id", orderHandler.GetOrder)
	orders.Put("/:year/:id", orderHandler.UpdateOrder)
	orders.Delete("/:year/:id", orderHandler.DeleteOrder)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.Get("/", expenseHandler.GetExpenses)
	expenses.Post("/", expenseHandler.CreateExpense)
	expenses.Delete("/:id", expenseHandler.DeleteExpense)

	// Summary and analytics routes
	summary := api.Group("/summary")
	summary.Get("/", summaryHandler.GetSummary)
	summary.Get("/analytics", summaryHandler.GetAnalytics)
	summary.Get("/export", summaryHandler.ExportOrders)

	// Prospect CRM routes
	prospects := api.Group("/prospects")
	prospects.Get("/", prospectHandler.GetProspects)
	prospects.Post("/", prospectHandler.CreateProspect)
	prospects.Put("/:docId", prospectHandler.UpdateProspect)
	prospects.Delete("/:docId", prospectHandler.DeleteProspect)

	// Config routes
	api.Get("/config/lists", configHandler.GetLists)

	// Backup routes
	api.Post("/backup", backupHandler.RunBackup)
	api.Post("/restore", backupHandler.Restore)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Dashboard: current-year buckets rendered server-side
	app.Get("/", func(c *fiber.Ctx) error {
		year := time.Now().Year()
		if y, err := strconv.Atoi(c.Query("year")); err == nil {
			year = y
		}
		return c.Render("index", fiber.Map{
			"Year":    year,
			"Buckets": Queries.CountBuckets(deps.State.Orders, year),
			"Orders":  len(Queries.OrdersOfYear(deps.State.Orders, year)),
		})
	})
}

// FiberConfig builds the app, mounts the middleware and serves.
func FiberConfig(deps Deps, port string) {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, deps)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
