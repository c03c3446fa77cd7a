package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Stream is a response type for raw bodies such as plain text. Return
// *Stream from a handler to bypass negotiated encoding.
type Stream struct {
	ContentType string
	Status      int
	Body        io.Reader
}

// encodeResponse writes resp with the encoder negotiated from the Accept
// header. An Accept header that matches no encoder yields 406.
func encodeResponse(w http.ResponseWriter, r *http.Request, resp any, defaultStatus int, codecs *codecRegistry) {
	if s, ok := resp.(*Stream); ok {
		writeStream(w, s, defaultStatus)
		return
	}

	status := defaultStatus
	if sc, ok := resp.(StatusCoder); ok {
		status = sc.StatusCode()
	}

	enc, ok := codecs.negotiate(r.Header.Get("Accept"))
	if !ok {
		writeErrorResponse(w, Errorf(http.StatusNotAcceptable, "no encoder for Accept %q", r.Header.Get("Accept")))
		return
	}

	w.Header().Set("Content-Type", enc.ContentType())
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort after WriteHeader
	enc.Encode(w, resp)
}

func writeStream(w http.ResponseWriter, s *Stream, defaultStatus int) {
	if s.ContentType != "" {
		w.Header().Set("Content-Type", s.ContentType)
	}
	status := s.Status
	if status == 0 {
		status = defaultStatus
	}
	w.WriteHeader(status)
	if s.Body != nil {
		//nolint:errcheck,gosec // best-effort streaming copy
		io.Copy(w, s.Body)
	}
}

// writeErrorResponse writes an error as an RFC 9457 problem details response.
func writeErrorResponse(w http.ResponseWriter, err error) {
	status := ErrorStatus(err)

	var pd *ProblemDetail
	if !errors.As(err, &pd) {
		pd = &ProblemDetail{
			Type:   "about:blank",
			Title:  http.StatusText(status),
			Status: status,
			Detail: err.Error(),
		}
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(pd.Status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(pd)
}
