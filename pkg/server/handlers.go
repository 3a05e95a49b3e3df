package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	apperr "sqlcompiler/pkg/error"
	"sqlcompiler/pkg/lexer"
	"sqlcompiler/pkg/logging"
)

// EmptyInputMessage is the body returned for a blank /analyze payload.
const EmptyInputMessage = "Please enter SQL-like code."

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexData struct {
	Keywords  []string
	TypeNames []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := indexData{
		Keywords:  lexer.Keywords(),
		TypeNames: lexer.TypeNames(),
	}
	if err := indexTemplate.Execute(w, data); err != nil {
		s.log.Error("rendering index", "error", err)
	}
}

// handleAnalyze tokenizes the request body and answers with the token list.
// ERROR tokens are ordinary entries in the response; only a blank or
// unreadable body is refused.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := logging.WithRequest(s.nextRequestID(), r.Method, r.URL.Path)

	source, appErr := s.readSource(w, r)
	if appErr == nil && strings.TrimSpace(source) == "" {
		appErr = apperr.NewUser(apperr.CodeEmptyInput, EmptyInputMessage)
	}
	if appErr != nil {
		appErr.Operation = "Analyze"
		appErr.Component = "Server"
		s.metrics.RecordRejected()
		writeError(w, log, appErr)
		return
	}

	tokens := lexer.Tokenize(source, lexerOptions(r)...)
	if tokens == nil {
		tokens = []lexer.Token{}
	}
	summary := lexer.Summarize(tokens)
	s.metrics.RecordAnalysis(time.Since(start), summary)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(tokens); err != nil {
		log.Error("writing response failed",
			"error", apperr.Wrap(err, apperr.CodeEncodeResponse, "Analyze", "Server").Error())
		return
	}

	log.Info("analyzed",
		"bytes", len(source),
		"tokens", summary.Total,
		"errors", summary.Errors,
		"halted", summary.Halted,
		"duration", time.Since(start))
}

// readSource extracts the source text. A text/plain body is taken verbatim;
// anything else must be a JSON string.
func (s *Server) readSource(w http.ResponseWriter, r *http.Request) (string, *apperr.AppError) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", apperr.NewUser(apperr.CodeBodyTooLarge, "request body too large").
				WithDetail(fmt.Sprintf("limit is %d bytes", tooLarge.Limit))
		}
		return "", apperr.NewUser(apperr.CodeInvalidBody, "could not read request body").WithDetail(err.Error())
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		return string(body), nil
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return "", nil
	}

	var source string
	if err := json.Unmarshal(body, &source); err != nil {
		return "", apperr.NewUser(apperr.CodeInvalidBody, "invalid request body").
			WithDetail(err.Error()).
			WithHint(`send the source as a JSON string, e.g. "SELECT a FROM t;", or use Content-Type: text/plain`)
	}
	return source, nil
}

// lexerOptions maps query parameters to lexer options.
func lexerOptions(r *http.Request) []lexer.Option {
	var opts []lexer.Option
	if strings.EqualFold(r.URL.Query().Get("keywords"), "insensitive") {
		opts = append(opts, lexer.WithCaseInsensitiveKeywords())
	}
	return opts
}

func writeError(w http.ResponseWriter, log *slog.Logger, appErr *apperr.AppError) {
	status := appErr.HTTPStatus()
	if appErr.Category == apperr.ErrCategoryUser {
		log.Warn("request rejected", "code", appErr.Code, "status", status, "error", appErr.Error())
	} else {
		log.Error("request failed", "code", appErr.Code, "status", status, "error", appErr.Error())
	}
	http.Error(w, appErr.Message, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprint(w, s.metrics.GetMetrics())
}
