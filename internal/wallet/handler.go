package wallet

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/walletpay/walletpay/internal/money"
)

// Handler exposes the wallet transaction endpoints over HTTP.
type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, validate: validator.New(), logger: logger}
}

type transactionRequest struct {
	Amount money.Money `json:"amount" validate:"required"`
}

type walletResponse struct {
	Identifier string      `json:"identifier"`
	Balance    money.Money `json:"balance"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Details []errorDetail `json:"details"`
}

// Get returns the wallet for the path identifier, or 404.
func (h *Handler) Get(c *fiber.Ctx) error {
	w, err := h.service.Get(c.UserContext(), c.Params("walletId"))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(w))
}

// Charge debits the wallet by the posted amount.
func (h *Handler) Charge(c *fiber.Ctx) error {
	return h.transact(c, h.service.Charge)
}

// Recharge credits the wallet by the posted amount after the external
// payment platform accepts the charge.
func (h *Handler) Recharge(c *fiber.Ctx) error {
	return h.transact(c, h.service.Recharge)
}

func (h *Handler) transact(c *fiber.Ctx, op func(context.Context, string, money.Money) (Wallet, error)) error {
	var req transactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errorDetail{Code: CodeValidation, Message: "request body is malformed"})
	}

	if err := h.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make([]errorDetail, 0, len(fieldErrs))
			for range fieldErrs {
				details = append(details, errorDetail{Code: CodeValidation, Message: "amount is required"})
			}
			return badRequest(c, details...)
		}
		return badRequest(c, errorDetail{Code: CodeValidation, Message: err.Error()})
	}

	w, err := op(c.UserContext(), c.Params("walletId"), req.Amount)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(w))
}

func (h *Handler) renderError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.SendStatus(http.StatusNotFound)
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return badRequest(c, errorDetail{Code: CodeValidation, Message: valErr.Message})
	}

	var busErr *BusinessError
	if errors.As(err, &busErr) {
		if busErr.Code == CodePaymentError && h.logger != nil {
			// The underlying gateway failure is log-only context, never
			// response data.
			h.logger.Warn("payment platform declined recharge",
				slog.String("wallet_id", c.Params("walletId")),
				slog.Any("error", busErr.Unwrap()))
		}
		return badRequest(c, errorDetail{Code: busErr.Code, Message: busErr.Message})
	}

	if h.logger != nil {
		h.logger.Error("wallet transaction failed",
			slog.String("wallet_id", c.Params("walletId")),
			slog.Any("error", err))
	}
	return fiber.NewError(http.StatusInternalServerError, "internal error")
}

func badRequest(c *fiber.Ctx, details ...errorDetail) error {
	return c.Status(http.StatusBadRequest).JSON(errorResponse{Details: details})
}

func toResponse(w Wallet) walletResponse {
	return walletResponse{Identifier: w.Identifier, Balance: w.Balance}
}
