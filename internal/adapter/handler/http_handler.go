package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shoporder/internal/core/domain"
	"shoporder/internal/core/service"
)

const orderDateLayout = "2006-01-02"

type HTTPHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewHTTPHandler(orderService *service.OrderService, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{orderService: orderService, logger: logger}
}

type PlaceOrderHTTPRequest struct {
	CustomerName string          `json:"customer_name"`
	OrderDate    string          `json:"order_date"`
	Items        []LineItemInput `json:"items"`
}

type LineItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type OrderHTTPResponse struct {
	ID           string                  `json:"id"`
	CustomerName string                  `json:"customer_name"`
	OrderDate    string                  `json:"order_date"`
	TotalPrice   decimal.Decimal         `json:"total_price"`
	Items        []OrderItemHTTPResponse `json:"items"`
	CreatedAt    time.Time               `json:"created_at"`
}

type OrderItemHTTPResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type ProductHTTPResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type ErrorHTTPResponse struct {
	Error string `json:"error"`
}

// Router builds the HTTP surface. The timeout applies per request and is
// configurable; the store enforces its own limits beyond that.
func (h *HTTPHandler) Router(timeout time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(middleware.Timeout(timeout))

	r.Get("/healthz", h.HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Post("/orders", h.PlaceOrder)
		r.Get("/orders/{id}", h.GetOrder)
		r.Get("/products", h.ListProducts)
	})
	return r
}

func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Error: "invalid request body"})
		return
	}

	orderDate, err := time.Parse(orderDateLayout, req.OrderDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Error: "order_date must be a valid YYYY-MM-DD date"})
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), domain.PlaceOrderRequest{
		CustomerName: req.CustomerName,
		OrderDate:    orderDate,
		Items: lo.Map(req.Items, func(item LineItemInput, _ int) domain.LineItem {
			return domain.LineItem{ProductID: item.ProductID, Quantity: item.Quantity}
		}),
	})
	if err != nil {
		h.writePlacementError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorHTTPResponse{Error: "order not found"})
			return
		}
		h.logger.Error("get order", zap.String("order_id", orderID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorHTTPResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.orderService.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("list products", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorHTTPResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(products, func(p domain.Product, _ int) ProductHTTPResponse {
		return ProductHTTPResponse{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
	}))
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Business rejections name the offending input; anything else stays generic
// so storage internals never leak to callers.
func (h *HTTPHandler) writePlacementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidOrder),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrInsufficientStock):
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Error: err.Error()})
	default:
		h.logger.Error("place order", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorHTTPResponse{Error: "internal error"})
	}
}

func toOrderResponse(order domain.Order) OrderHTTPResponse {
	return OrderHTTPResponse{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		OrderDate:    order.OrderDate.Format(orderDateLayout),
		TotalPrice:   order.TotalPrice,
		Items: lo.Map(order.Items, func(item domain.OrderItem, _ int) OrderItemHTTPResponse {
			return OrderItemHTTPResponse{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Subtotal:  item.Subtotal,
			}
		}),
		CreatedAt: order.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
