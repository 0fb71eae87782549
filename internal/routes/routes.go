package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/walletpay/walletpay/internal/config"
	"github.com/walletpay/walletpay/internal/gateway"
	"github.com/walletpay/walletpay/internal/middleware"
	"github.com/walletpay/walletpay/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Outside development both backends must be present, even though main
	// also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var store wallet.Store
	if d.DB != nil {
		store = wallet.NewPostgresStore(d.DB)
	} else {
		store = wallet.NewMemoryStore()
	}

	var gw gateway.Gateway
	switch d.Cfg.PaymentProvider {
	case config.ProviderStripe:
		gw = gateway.NewStripe(d.Cfg.StripeSecretKey, d.Cfg.StripeCurrency, d.Cfg.StripeSource)
	default:
		gw = gateway.NewSimulated(d.Cfg.DeclineBelow)
	}

	walletSvc := wallet.NewService(store, gw)
	walletHandler := wallet.NewHandler(walletSvc, d.Logger)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterWalletRoutes(api, walletHandler)

	return nil
}
