package middleware

import (
	"bytes"
	"maps"
	"net/http"
)

// responseWriter wraps http.ResponseWriter to capture response details
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int
	headerWritten bool
}

// WriteHeader captures the status code
func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.headerWritten {
		return
	}
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Write captures the response size
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// bufferedWriter holds the status and body until flush. Headers go straight
// to the underlying writer's header map.
type bufferedWriter struct {
	http.ResponseWriter
	status  int
	buf     bytes.Buffer
	initial http.Header
}

func newBufferedWriter(w http.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{ResponseWriter: w, initial: w.Header().Clone()}
}

func (bw *bufferedWriter) WriteHeader(status int) {
	if bw.status == 0 {
		bw.status = status
	}
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	if bw.status == 0 {
		bw.status = http.StatusOK
	}
	return bw.buf.Write(b)
}

// flush sends the buffered response.
func (bw *bufferedWriter) flush() error {
	if bw.status == 0 {
		bw.status = http.StatusOK
	}
	bw.ResponseWriter.WriteHeader(bw.status)
	_, err := bw.ResponseWriter.Write(bw.buf.Bytes())
	return err
}

// discard drops the buffered response and restores the headers present
// before the handler ran.
func (bw *bufferedWriter) discard() {
	bw.buf.Reset()
	bw.status = 0
	h := bw.ResponseWriter.Header()
	clear(h)
	maps.Copy(h, bw.initial)
}
