package http

import (
	"net/http"

	"storefront-service/internal/domain/models"
)

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opCtx(r)
	defer cancel()

	products, err := s.products.List(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opCtx(r)
	defer cancel()

	product, err := s.products.Get(ctx, r.PathValue("partitionKey"), r.PathValue("rowKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := decodeJSON(r, &product); err != nil {
		respondError(w, err)
		return
	}

	ctx, cancel := s.opCtx(r)
	defer cancel()

	id, err := s.products.Create(ctx, product)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Product created successfully",
		"id":      id,
	})
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := decodeJSON(r, &product); err != nil {
		respondError(w, err)
		return
	}

	ctx, cancel := s.opCtx(r)
	defer cancel()

	if err := s.products.Update(ctx, product); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product updated successfully"})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opCtx(r)
	defer cancel()

	if err := s.products.Delete(ctx, r.PathValue("partitionKey"), r.PathValue("rowKey")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (s *Server) productHasOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opCtx(r)
	defer cancel()

	hasOrders, err := s.products.HasOrders(ctx, r.PathValue("rowKey"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"hasOrders": hasOrders})
}
