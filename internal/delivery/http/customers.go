package http

import (
	"net/http"

	"storefront-service/internal/domain/models"
)

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opCtx(r)
	defer cancel()

	customers, err := s.customers.List(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opCtx(r)
	defer cancel()

	customer, err := s.customers.Get(ctx, r.PathValue("partitionKey"), r.PathValue("rowKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := decodeJSON(r, &customer); err != nil {
		respondError(w, err)
		return
	}

	ctx, cancel := s.opCtx(r)
	defer cancel()

	id, err := s.customers.Create(ctx, customer)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Customer created successfully",
		"id":      id,
	})
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := decodeJSON(r, &customer); err != nil {
		respondError(w, err)
		return
	}

	ctx, cancel := s.opCtx(r)
	defer cancel()

	if err := s.customers.Update(ctx, customer); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Customer updated successfully"})
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opCtx(r)
	defer cancel()

	if err := s.customers.Delete(ctx, r.PathValue("partitionKey"), r.PathValue("rowKey")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}

func (s *Server) customerHasOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opCtx(r)
	defer cancel()

	hasOrders, err := s.customers.HasOrders(ctx, r.PathValue("rowKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"hasOrders": hasOrders})
}
