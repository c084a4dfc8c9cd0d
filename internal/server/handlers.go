package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/yaklabco/gotexlint/internal/logging"
	"github.com/yaklabco/gotexlint/pkg/latex"
	"github.com/yaklabco/gotexlint/pkg/lint"
	"github.com/yaklabco/gotexlint/pkg/texast"
)

// requestPath names submitted documents in parse errors and diagnostics.
const requestPath = "request.tex"

// LintResponse is the body returned by POST /v1/lint.
type LintResponse struct {
	Tables []TableResult `json:"tables"`
}

// TableResult carries the warnings of one table, in document order.
type TableResult struct {
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Warnings []string `json:"warnings"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error  string `json:"error"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	result, ok := s.process(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := texast.Encode(w, result.Tree, true); err != nil {
		logging.FromContext(r.Context()).Error("write document", logging.FieldError, err)
	}
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	result, ok := s.process(w, r)
	if !ok {
		return
	}

	warnings := result.TableWarnings()
	resp := LintResponse{Tables: make([]TableResult, len(warnings))}
	for i, msgs := range warnings {
		resp.Tables[i].Warnings = msgs
		if i < len(result.TablePositions) {
			resp.Tables[i].Line = result.TablePositions[i].Line
			resp.Tables[i].Column = result.TablePositions[i].Column
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// process reads the request body and runs it through the pipeline. On
// failure it writes the error reply and reports false.
func (s *Server) process(w http.ResponseWriter, r *http.Request) (*lint.FileResult, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				ErrorResponse{Error: fmt.Sprintf("document exceeds %d bytes", tooLarge.Limit)})
			return nil, false
		}
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: "read body: " + err.Error()})
		return nil, false
	}

	result, err := s.pipeline.ProcessContent(r.Context(), requestPath, body)
	if err != nil {
		s.writeProcessError(w, r, err)
		return nil, false
	}
	return result, true
}

func (s *Server) writeProcessError(w http.ResponseWriter, r *http.Request, err error) {
	var parseErr *latex.ParseError
	switch {
	case errors.As(err, &parseErr):
		writeError(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  parseErr.Msg,
			Line:   parseErr.Pos.Line,
			Column: parseErr.Pos.Column,
		})
	case errors.Is(err, lint.ErrParseFailure), errors.Is(err, lint.ErrConvertFailure):
		writeError(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		logging.FromContext(r.Context()).Error("process document", logging.FieldError, err)
		writeError(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, resp ErrorResponse) {
	writeJSON(w, code, resp)
}
