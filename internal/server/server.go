package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"sellpanel/internal/engine"
	"sellpanel/internal/logger"
	"sellpanel/internal/models"
)

// Server — JSON-граница для браузерной панели. Отрисовкой занимается
// страница, сервер отдаёт только данные.
type Server struct {
	engine *engine.Engine
	log    *logger.Logger
	mux    *http.ServeMux
}

func New(eng *engine.Engine, log *logger.Logger) *Server {
	s := &Server{
		engine: eng,
		log:    log,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /api/orderbook", s.handleOrderBook)
	s.mux.HandleFunc("GET /api/ticker", s.handleTicker)
	s.mux.HandleFunc("GET /api/balances", s.handleBalances)
	s.mux.HandleFunc("GET /api/orders/active", s.handleActiveOrders)
	s.mux.HandleFunc("GET /api/orders/tracked", s.handleTrackedOrders)
	s.mux.HandleFunc("GET /api/orders/detail", s.handleOrderDetail)
	s.mux.HandleFunc("POST /api/orders", s.handlePlaceOrder)
	s.mux.HandleFunc("POST /api/orders/cancel", s.handleCancelOrder)
	s.mux.HandleFunc("POST /api/quantity", s.handleQuantity)
	s.mux.HandleFunc("GET /api/journal", s.handleJournal)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleOrderBook(w http.ResponseWriter, r *http.Request) {
	s.engine.Cache().RefreshIfStale(r.Context(), time.Now())
	writeJSON(w, http.StatusOK, s.engine.Cache().OrderBook())
}

func (s *Server) handleTicker(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Cache().LastTicker())
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	s.engine.Cache().RefreshIfStale(r.Context(), time.Now())
	writeJSON(w, http.StatusOK, s.engine.Cache().Balances())
}

func (s *Server) handleActiveOrders(w http.ResponseWriter, r *http.Request) {
	s.engine.Cache().RefreshIfStale(r.Context(), time.Now())

	if r.URL.Query().Get("side") == string(models.OrderSideSell) {
		writeJSON(w, http.StatusOK, s.engine.Cache().SellOrders())
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Cache().ActiveOrders())
}

func (s *Server) handleTrackedOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.TrackedOrders())
}

func (s *Server) handleOrderDetail(w http.ResponseWriter, r *http.Request) {
	order, err := s.engine.OrderDetail(r.Context(), r.URL.Query().Get("order_id"))
	if err != nil {
		writeError(w, detailStatusCode(err), err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type placeOrderRequest struct {
	Side       models.OrderSide `json:"side"`
	Price      string           `json:"price"`
	Quantity   string           `json:"quantity"`
	Percentage *int             `json:"percentage,omitempty"`
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	quantity := req.Quantity
	if req.Percentage != nil {
		s.engine.Cache().RefreshIfStale(r.Context(), time.Now())
		qty, _, err := s.engine.Quantity(r.Context(), req.Side, *req.Percentage, req.Price)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		quantity = formatQuantity(qty)
	}

	entry := s.engine.PlaceOrder(s.placementContext(r), req.Side, req.Price, quantity)
	writeJSON(w, statusCode(entry.Status), entry)
}

type cancelOrderRequest struct {
	OrderID string `json:"order_id"`
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	var req cancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.engine.CancelOrder(s.placementContext(r), req.OrderID); err != nil {
		writeError(w, detailStatusCode(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "success", "order_id": req.OrderID})
}

type quantityRequest struct {
	Side       models.OrderSide `json:"side"`
	Percentage int              `json:"percentage"`
	Price      string           `json:"price"`
}

func (s *Server) handleQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.engine.Cache().RefreshIfStale(r.Context(), time.Now())

	qty, krwEquivalent, err := s.engine.Quantity(r.Context(), req.Side, req.Percentage, req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"quantity":       formatQuantity(qty),
		"krw_equivalent": krwEquivalent,
	})
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	entries, err := s.engine.Journal().Recent(20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// placementContext отвязывает заявку от контекста HTTP-запроса:
// начатую отправку не прерываем, ждём ответ биржи или сетевую ошибку.
func (s *Server) placementContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// detailStatusCode отличает ошибку во входных данных от ошибки биржи.
func detailStatusCode(err error) int {
	if errors.Is(err, engine.ErrOrderIDRequired) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func statusCode(status models.EntryStatus) int {
	switch status {
	case models.EntryStatusSuccess:
		return http.StatusOK
	case models.EntryStatusInputError:
		return http.StatusBadRequest
	case models.EntryStatusAPIError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func formatQuantity(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error_message": err.Error()})
}
