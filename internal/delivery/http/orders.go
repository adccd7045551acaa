package http

import (
	"io"
	"net/http"

	"storefront-service/internal/domain/errs"
	"storefront-service/internal/domain/models"
)

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opCtx(r)
	defer cancel()

	orders, err := s.orders.List(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opCtx(r)
	defer cancel()

	order, err := s.orders.Get(ctx, r.PathValue("partitionKey"), r.PathValue("rowKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := decodeJSON(r, &order); err != nil {
		respondError(w, err)
		return
	}

	ctx, cancel := s.opCtx(r)
	defer cancel()

	id, err := s.orders.Create(ctx, order)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Order created successfully",
		"id":      id,
	})
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := decodeJSON(r, &order); err != nil {
		respondError(w, err)
		return
	}

	ctx, cancel := s.opCtx(r)
	defer cancel()

	if err := s.orders.Update(ctx, order); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order updated successfully"})
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opCtx(r)
	defer cancel()

	if err := s.orders.Delete(ctx, r.PathValue("partitionKey"), r.PathValue("rowKey")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

// queueOrder enqueues the request body verbatim. The body is opaque here; the
// consumer decides whether it is a persistable JSON order.
func (s *Server) queueOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, errs.Parse("Failed to read request body", err))
		return
	}

	ctx, cancel := s.opCtx(r)
	defer cancel()

	if err := s.orders.Queue(ctx, string(body)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Order queued successfully"})
}
