// Package responsewriter records the status and body size of a response so
// the logging, metrics and tracing middleware can report them after the
// handler returns.
package responsewriter

import "net/http"

// Recorder is an http.ResponseWriter that remembers what was sent.
type Recorder struct {
	http.ResponseWriter
	status int
	size   int
}

// Wrap returns a Recorder around w.
func Wrap(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w}
}

// WriteHeader forwards the first status only; later calls are dropped the
// same way net/http drops superfluous WriteHeader calls.
func (r *Recorder) WriteHeader(status int) {
	if r.status != 0 {
		return
	}
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *Recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// StatusCode is the status sent to the client. A handler that wrote nothing
// is reported as 200, which is what net/http sends for it.
func (r *Recorder) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// BytesWritten is the number of body bytes accepted by the underlying writer.
func (r *Recorder) BytesWritten() int {
	return r.size
}

// Committed reports whether the status line has been sent.
func (r *Recorder) Committed() bool {
	return r.status != 0
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
