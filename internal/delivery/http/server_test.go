package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/domain/errs"
	"storefront-service/internal/domain/models"
	"storefront-service/internal/usecase"
	"storefront-service/pkg/interfaces"
)

// fakeStore covers the store methods the handlers under test reach; the
// embedded nil interface panics on anything unexpected.
type fakeStore struct {
	interfaces.EntityStore
	customers map[string]models.Customer
	orders    map[string]models.Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: map[string]models.Customer{},
		orders:    map[string]models.Order{},
	}
}

func (s *fakeStore) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	out := []models.Customer{}
	for _, c := range s.customers {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeStore) GetCustomer(ctx context.Context, partitionKey, rowKey string) (*models.Customer, error) {
	c, ok := s.customers[rowKey]
	if !ok {
		return nil, errs.NotFound("Customer not found")
	}
	return &c, nil
}

func (s *fakeStore) InsertCustomer(ctx context.Context, customer models.Customer) error {
	s.customers[customer.RowKey] = customer
	return nil
}

func (s *fakeStore) DeleteCustomer(ctx context.Context, partitionKey, rowKey string) error {
	for _, o := range s.orders {
		if o.CustomerRowKey == rowKey {
			return errs.Validation("Cannot delete customer because they have associated orders")
		}
	}
	if _, ok := s.customers[rowKey]; !ok {
		return errs.NotFound("Customer not found")
	}
	delete(s.customers, rowKey)
	return nil
}

func (s *fakeStore) CustomerContactInUse(ctx context.Context, email, phone string) (bool, error) {
	for _, c := range s.customers {
		if c.Email == email || c.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) HasOrdersForCustomer(ctx context.Context, customerRowKey string) (bool, error) {
	for _, o := range s.orders {
		if o.CustomerRowKey == customerRowKey {
			return true, nil
		}
	}
	return false, nil
}

type fakeQueue struct {
	payloads []string
}

func (q *fakeQueue) Enqueue(ctx context.Context, payload string) error {
	q.payloads = append(q.payloads, payload)
	return nil
}

func (q *fakeQueue) Close() error { return nil }

type fakeBlobStore struct {
	uploaded map[string][]byte
}

func (b *fakeBlobStore) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	if b.uploaded == nil {
		b.uploaded = map[string][]byte{}
	}
	b.uploaded[fileName] = data
	return "http://localhost:9000/image/" + fileName, nil
}

func (b *fakeBlobStore) Delete(ctx context.Context, blobURL string) error { return nil }

type fakeDocumentStore struct {
	files    map[string][]byte
	modified map[string]time.Time
}

func (d *fakeDocumentStore) Upload(ctx context.Context, directory, fileName string, data []byte) error {
	if d.files == nil {
		d.files = map[string][]byte{}
	}
	d.files[directory+"/"+fileName] = data
	return nil
}

func (d *fakeDocumentStore) Download(ctx context.Context, directory, fileName string) ([]byte, error) {
	data, ok := d.files[directory+"/"+fileName]
	if !ok {
		return nil, errs.NotFound("File not found")
	}
	return data, nil
}

func (d *fakeDocumentStore) List(ctx context.Context, directory string) ([]models.FileInfo, error) {
	files := []models.FileInfo{}
	for key, data := range d.files {
		if strings.HasPrefix(key, directory+"/") {
			files = append(files, models.FileInfo{
				Name:         strings.TrimPrefix(key, directory+"/"),
				Size:         int64(len(data)),
				LastModified: d.modified[key],
			})
		}
	}
	return files, nil
}

func (d *fakeDocumentStore) Delete(ctx context.Context, directory, fileName string) error {
	delete(d.files, directory+"/"+fileName)
	return nil
}

func newTestServer(store *fakeStore, queue *fakeQueue) *Server {
	return NewServer(
		0,
		5*time.Second,
		usecase.NewCustomerService(store),
		usecase.NewProductService(store),
		usecase.NewOrderService(store, queue),
		&fakeBlobStore{},
		&fakeDocumentStore{files: map[string][]byte{"order-1/invoice.pdf": []byte("pdf")}},
	)
}

func doRequest(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeQueue{})
	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestCreateCustomerHandler(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeQueue{})

	rec := doRequest(t, srv, http.MethodPost, "/customers",
		`{"name":"Alice","email":"a@x.com","phone":"5551234567","address":"1 Main St"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Customer created successfully", body["message"])
	assert.NotEmpty(t, body["id"])
}

func TestCreateCustomerHandlerValidation(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeQueue{})

	rec := doRequest(t, srv, http.MethodPost, "/customers",
		`{"name":"Alice","email":"a@x.com","phone":"nope","address":"1 Main St"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "validation", body["kind"])
	assert.Equal(t, "Please enter a valid phone number", body["error"])
}

func TestCreateCustomerHandlerBadJSON(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeQueue{})

	rec := doRequest(t, srv, http.MethodPost, "/customers", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "parse", decodeBody(t, rec)["kind"])
}

func TestGetCustomerHandlerNotFound(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeQueue{})

	rec := doRequest(t, srv, http.MethodGet, "/customers/Customer/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "not_found", body["kind"])
	assert.Equal(t, "Customer not found", body["error"])
}

func TestDeleteCustomerHandlerGuarded(t *testing.T) {
	store := newFakeStore()
	store.customers["c1"] = models.Customer{
		PartitionKey: models.CustomerPartition, RowKey: "c1",
		Name: "Alice", Email: "a@x.com", Phone: "5551234567", Address: "1 Main St",
	}
	store.orders["o1"] = models.Order{CustomerRowKey: "c1", ProductRowKey: "p1", Quantity: 1}
	srv := newTestServer(store, &fakeQueue{})

	rec := doRequest(t, srv, http.MethodDelete, "/customers/Customer/c1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete customer because they have associated orders", decodeBody(t, rec)["error"])

	// Entity must still be there.
	rec = doRequest(t, srv, http.MethodGet, "/customers/Customer/c1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCustomerHasOrdersHandler(t *testing.T) {
	store := newFakeStore()
	store.orders["o1"] = models.Order{CustomerRowKey: "c1", ProductRowKey: "p1", Quantity: 1}
	srv := newTestServer(store, &fakeQueue{})

	rec := doRequest(t, srv, http.MethodGet, "/customers/c1/hasorders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["hasOrders"])

	rec = doRequest(t, srv, http.MethodGet, "/customers/other/hasorders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["hasOrders"])
}

func TestQueueOrderHandler(t *testing.T) {
	queue := &fakeQueue{}
	srv := newTestServer(newFakeStore(), queue)

	payload := `{"customerRowKey":"c1","productRowKey":"p1","quantity":2}`
	rec := doRequest(t, srv, http.MethodPost, "/orders/queue", payload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order queued successfully", decodeBody(t, rec)["message"])

	// Body goes onto the queue verbatim.
	require.Len(t, queue.payloads, 1)
	assert.Equal(t, payload, queue.payloads[0])
}

func TestUploadBlobHandlerBadBase64(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeQueue{})

	rec := doRequest(t, srv, http.MethodPost, "/blob/upload",
		`{"fileName":"photo.png","base64Data":"%%%not-base64%%%"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid base64 data format", decodeBody(t, rec)["error"])
}

func TestUploadBlobHandler(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeQueue{})

	rec := doRequest(t, srv, http.MethodPost, "/blob/upload",
		`{"fileName":"photo.png","base64Data":"aGVsbG8="}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Blob uploaded successfully", body["message"])
	assert.Equal(t, "http://localhost:9000/image/photo.png", body["blobUrl"])
}

func TestListFilesHandler(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeQueue{})

	rec := doRequest(t, srv, http.MethodGet, "/files/list/order-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "order-1", body["directoryName"])
}

func TestUploadFileAutoHandler(t *testing.T) {
	docs := &fakeDocumentStore{}
	srv := NewServer(
		0,
		5*time.Second,
		usecase.NewCustomerService(newFakeStore()),
		usecase.NewProductService(newFakeStore()),
		usecase.NewOrderService(newFakeStore(), &fakeQueue{}),
		&fakeBlobStore{},
		docs,
	)

	rec := doRequest(t, srv, http.MethodPost, "/files/upload",
		`{"fileName":"doc.txt","base64Data":"aGVsbG8="}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "File uploaded successfully", body["message"])
	// No directory in the request means the file lands under "uploads".
	assert.Equal(t, "uploads", body["directoryName"])
	assert.Equal(t, float64(5), body["fileSize"])
	assert.Contains(t, docs.files, "uploads/doc.txt")

	rec = doRequest(t, srv, http.MethodPost, "/files/upload",
		`{"directoryName":"order-9","fileName":"doc.txt","base64Data":"aGVsbG8="}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "order-9", decodeBody(t, rec)["directoryName"])
	assert.Contains(t, docs.files, "order-9/doc.txt")
}

func TestUploadFileAutoHandlerMissingFields(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeQueue{})

	rec := doRequest(t, srv, http.MethodPost, "/files/upload",
		`{"base64Data":"aGVsbG8="}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "FileName and Base64Data are required", decodeBody(t, rec)["error"])
}

func TestFileInfoHandler(t *testing.T) {
	docs := &fakeDocumentStore{
		files: map[string][]byte{
			"order-1/invoice.pdf": []byte("pdf-bytes"),
			"order-1/receipt.txt": []byte("txt"),
		},
		modified: map[string]time.Time{
			"order-1/invoice.pdf": time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC),
			"order-1/receipt.txt": time.Date(2025, 11, 4, 12, 0, 0, 0, time.UTC),
		},
	}
	srv := NewServer(
		0,
		5*time.Second,
		usecase.NewCustomerService(newFakeStore()),
		usecase.NewProductService(newFakeStore()),
		usecase.NewOrderService(newFakeStore(), &fakeQueue{}),
		&fakeBlobStore{},
		docs,
	)

	rec := doRequest(t, srv, http.MethodGet, "/files/info/order-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "File information retrieved successfully", body["message"])
	assert.Equal(t, float64(2), body["fileCount"])
	assert.Equal(t, float64(12), body["totalSize"])
	assert.Equal(t, "receipt.txt", body["latestFile"])
}

func TestFileInfoHandlerEmptyDirectory(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeQueue{})

	rec := doRequest(t, srv, http.MethodGet, "/files/info/empty-dir", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["fileCount"])
	assert.Equal(t, float64(0), body["totalSize"])
	assert.Nil(t, body["latestFile"])
}

func TestDownloadFileHandlerNotFound(t *testing.T) {
	srv := newTestServer(newFakeStore(), &fakeQueue{})

	rec := doRequest(t, srv, http.MethodGet, "/files/download/order-1/missing.pdf", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "File not found", decodeBody(t, rec)["error"])
}
