package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"storefront-service/internal/usecase"
	"storefront-service/pkg/interfaces"
)

type Server struct {
	server         *http.Server
	customers      *usecase.CustomerService
	products       *usecase.ProductService
	orders         *usecase.OrderService
	blobs          interfaces.BlobStore
	documents      interfaces.DocumentStore
	port           int
	storageTimeout time.Duration
	isRunning      bool
}

func NewServer(port int, storageTimeout time.Duration,
	customers *usecase.CustomerService,
	products *usecase.ProductService,
	orders *usecase.OrderService,
	blobs interfaces.BlobStore,
	documents interfaces.DocumentStore,
) *Server {
	return &Server{
		port:           port,
		storageTimeout: storageTimeout,
		customers:      customers,
		products:       products,
		orders:         orders,
		blobs:          blobs,
		documents:      documents,
	}
}

func (s *Server) Start() error {
	if s.isRunning {
		return nil
	}

	addr := fmt.Sprintf(":%d", s.port)
	wrappedHandler := s.loggingMiddleware(s.routes())

	s.server = &http.Server{
		Addr:         addr,
		Handler:      wrappedHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.isRunning = true

	go func() {
		slog.Info("HTTP server started", "address", fmt.Sprintf("http://localhost%s", addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed to start or encountered runtime error",
				"error", err,
				"address", addr,
				"port", s.port)
		}
	}()

	return nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthCheckHandler)

	mux.HandleFunc("GET /customers", s.listCustomers)
	mux.HandleFunc("POST /customers", s.createCustomer)
	mux.HandleFunc("PUT /customers", s.updateCustomer)
	mux.HandleFunc("GET /customers/{partitionKey}/{rowKey}", s.getCustomer)
	mux.HandleFunc("DELETE /customers/{partitionKey}/{rowKey}", s.deleteCustomer)
	mux.HandleFunc("GET /customers/{rowKey}/hasorders", s.customerHasOrders)

	mux.HandleFunc("GET /products", s.listProducts)
	mux.HandleFunc("POST /products", s.createProduct)
	mux.HandleFunc("PUT /products", s.updateProduct)
	mux.HandleFunc("GET /products/{partitionKey}/{rowKey}", s.getProduct)
	mux.HandleFunc("DELETE /products/{partitionKey}/{rowKey}", s.deleteProduct)
	mux.HandleFunc("GET /products/{rowKey}/hasorders", s.productHasOrders)

	mux.HandleFunc("GET /orders", s.listOrders)
	mux.HandleFunc("POST /orders", s.createOrder)
	mux.HandleFunc("PUT /orders", s.updateOrder)
	mux.HandleFunc("GET /orders/{partitionKey}/{rowKey}", s.getOrder)
	mux.HandleFunc("DELETE /orders/{partitionKey}/{rowKey}", s.deleteOrder)
	mux.HandleFunc("POST /orders/queue", s.queueOrder)

	mux.HandleFunc("POST /blob/upload", s.uploadBlob)
	mux.HandleFunc("DELETE /blob/delete", s.deleteBlob)

	mux.HandleFunc("POST /files/upload", s.uploadFileAuto)
	mux.HandleFunc("POST /files/upload/{directoryName}/{fileName}", s.uploadFile)
	mux.HandleFunc("GET /files/download/{directoryName}/{fileName}", s.downloadFile)
	mux.HandleFunc("GET /files/list/{directoryName}", s.listFiles)
	mux.HandleFunc("GET /files/info/{directoryName}", s.fileInfo)
	mux.HandleFunc("DELETE /files/delete/{directoryName}/{fileName}", s.deleteFile)

	return mux
}

// opCtx bounds every storage-touching operation with the configured timeout.
func (s *Server) opCtx(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := s.storageTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.statusCode,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)
	})
}

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) Shutdown(ctx context.Context) error {
	if !s.isRunning || s.server == nil {
		return nil
	}

	slog.Info("HTTP server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err := s.server.Shutdown(shutdownCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			slog.Error("HTTP server shutdown timed out, some connections may be forcibly closed",
				"error", err,
				"timeout", "30s")
		} else {
			slog.Error("HTTP server shutdown error", "error", err)
		}

		closeErr := s.server.Close()
		if closeErr != nil {
			slog.Error("Failed to forcibly close HTTP server", "error", closeErr)
		}
	} else {
		slog.Info("HTTP server shutdown completed successfully")
	}

	s.isRunning = false
	return err
}
