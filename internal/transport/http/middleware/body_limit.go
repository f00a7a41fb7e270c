package middleware

import "net/http"

// BodyLimit caps request bodies on writing methods. The bulk-import JSON
// payloads are the largest accepted writes and MAX_BODY_BYTES is sized for
// them; multipart uploads enforce their own per-file limit on top.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 && writesBody(r.Method) {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
