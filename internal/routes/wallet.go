package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/walletpay/walletpay/internal/wallet"
)

// RegisterWalletRoutes wires wallet lookup and transaction endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/wallets/:walletId", h.Get)
	r.Post("/wallets/:walletId/charge", h.Charge)
	r.Post("/wallets/:walletId/recharge", h.Recharge)
}
