package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"go.uber.org/zap"

	_ "embed"
)

//go:embed openapi.yaml
var contractYAML []byte

// newContractMiddleware loads the embedded API contract and returns a
// middleware that rejects non-conforming API requests with 400 before any
// handler runs. Requests outside the contract (the web client) pass through.
func newContractMiddleware() (func(http.Handler) http.Handler, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contractYAML)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			// Validation consumes the body; hand the handler a fresh copy.
			var raw []byte
			if r.Body != nil {
				var readErr error
				raw, readErr = io.ReadAll(r.Body)
				if readErr != nil {
					writeJSON(w, http.StatusBadRequest, errorBody{Message: "Could not read request body"})
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(raw))
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    &openapi3filter.Options{MultiError: true},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				writeJSON(w, http.StatusBadRequest, errorBody{
					Message: contractMessage(route.Path),
					Details: contractDetails(err),
				})
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(raw))
			next.ServeHTTP(w, r)
		})
	}, nil
}

// contractDetails flattens contract violations into the {field: [messages]}
// payload shape so API clients can attribute a 400 to individual fields.
// Non-schema failures (an unparsable body, say) yield no details.
func contractDetails(err error) map[string][]string {
	details := make(map[string][]string)
	collectSchemaErrors(err, details)
	if len(details) == 0 {
		return nil
	}
	return details
}

func collectSchemaErrors(err error, details map[string][]string) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, e := range multi {
			collectSchemaErrors(e, details)
		}
		return
	}
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		collectSchemaErrors(reqErr.Err, details)
		return
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := schemaErr.JSONPointer()
		if len(pointer) == 0 {
			return
		}
		field := pointer[len(pointer)-1]
		details[field] = append(details[field], schemaViolationMessage(schemaErr))
	}
}

func schemaViolationMessage(schemaErr *openapi3.SchemaError) string {
	if schemaErr.SchemaField == "required" {
		return "This field is required"
	}
	return "Failed validation on rule " + schemaErr.SchemaField
}

func contractMessage(routePath string) string {
	switch routePath {
	case "/api/form-structure":
		return "Product type is required"
	case "/api/reviews":
		return "Invalid review data"
	default:
		return "Invalid request"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// requestLogger logs one line per request with method, path, status, and
// duration.
func requestLogger(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
