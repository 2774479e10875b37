package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// NewCompressionHandler returns a middleware that gzip-compresses responses
// for clients that accept it. Small responses pass through uncompressed;
// gzhttp applies its own minimum-size threshold.
func NewCompressionHandler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return gzhttp.GzipHandler(next)
	}
}
