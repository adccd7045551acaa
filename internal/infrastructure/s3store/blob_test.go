package s3store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-service/internal/domain/errs"
)

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"photo.png":    "image/png",
		"photo.PNG":    "image/png",
		"photo.jpg":    "image/jpeg",
		"photo.jpeg":   "image/jpeg",
		"photo.gif":    "image/gif",
		"photo.bmp":    "image/bmp",
		"photo.webp":   "image/webp",
		"report.pdf":   "application/octet-stream",
		"no-extension": "application/octet-stream",
	}
	for fileName, want := range cases {
		assert.Equal(t, want, ContentTypeFor(fileName), fileName)
	}
}

func TestKeyFromURL(t *testing.T) {
	b := &BlobStore{bucket: "image", endpoint: "http://localhost:9000"}

	key, err := b.keyFromURL("http://localhost:9000/image/photo.png")
	assert.NoError(t, err)
	assert.Equal(t, "photo.png", key)

	// A bare file name works too.
	key, err = b.keyFromURL("photo.png")
	assert.NoError(t, err)
	assert.Equal(t, "photo.png", key)

	_, err = b.keyFromURL("http://localhost:9000/image/")
	assert.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, "order-1/invoice.pdf", documentKey("order-1", "invoice.pdf"))
	assert.Equal(t, "order-1/invoice.pdf", documentKey("/order-1/", "invoice.pdf"))
}
