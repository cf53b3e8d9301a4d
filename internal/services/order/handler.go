package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/LutherWJ/AlfredOrdering/internal/logger"
	"github.com/LutherWJ/AlfredOrdering/internal/models"
)

// Handler handles HTTP requests for the order service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// CreateOrder handles POST /orders requests. The authenticated customer id
// arrives in the X-Customer-ID header, placed there by the gateway's auth
// middleware; this service does not verify sessions itself.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	if r.Header.Get("Content-Type") != "application/json" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return
	}

	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		h.writeErrorResponse(w, http.StatusUnauthorized, "customer identity missing", requestID)
		return
	}

	var req models.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Request validation failed", requestID, err, map[string]interface{}{
			"restaurant_id": req.RestaurantID,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	ord, err := h.service.CreateOrder(ctx, customerID, &req, requestID)
	if err != nil {
		h.writeOrderError(w, err, requestID, map[string]interface{}{
			"customer_id":   customerID,
			"restaurant_id": req.RestaurantID,
		})
		return
	}

	h.writeJSON(w, http.StatusCreated, ord, requestID)
}

// GetOrder handles GET /orders/{number} requests
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	number := r.PathValue("number")

	ord, err := h.service.GetOrder(r.Context(), number)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
			return
		}
		h.logger.Error("order_lookup_failed", "Failed to fetch order", requestID, err, map[string]interface{}{
			"order_number": number,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, ord, requestID)
}

// ListCustomerOrders handles GET /customers/{id}/orders requests
func (h *Handler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	customerID := r.PathValue("id")

	orders, err := h.service.ListCustomerOrders(r.Context(), customerID)
	if err != nil {
		h.logger.Error("order_history_failed", "Failed to list customer orders", requestID, err, map[string]interface{}{
			"customer_id": customerID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	h.writeJSON(w, http.StatusOK, orders, requestID)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
	}
	h.writeJSON(w, http.StatusOK, response, "")
}

// writeOrderError maps engine failures onto HTTP statuses: reference errors
// are 404s, business-rule violations 400s with the offending name verbatim,
// anything else a 500.
func (h *Handler) writeOrderError(w http.ResponseWriter, err error, requestID string, fields map[string]interface{}) {
	switch {
	case IsNotFound(err):
		h.writeErrorResponse(w, http.StatusNotFound, err.Error(), requestID)
	case IsRuleViolation(err):
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
	default:
		h.logger.Error("order_creation_failed", "Failed to create order", requestID, err, fields)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Unable to create order. Please try again later.", requestID)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /orders", h.withLogging(h.CreateOrder))
	mux.HandleFunc("GET /orders/{number}", h.withLogging(h.GetOrder))
	mux.HandleFunc("GET /customers/{id}/orders", h.withLogging(h.ListCustomerOrders))
	mux.HandleFunc("GET /health", h.withLogging(h.HealthCheck))

	return mux
}

type contextKey string

const requestIDKey contextKey = "request_id"

func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return logger.GenerateRequestID()
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: 200}

		next(rw, r)

		duration := time.Since(start)
		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
