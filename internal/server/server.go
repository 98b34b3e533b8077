// Package server exposes the HTTP API: schema generation, review submission,
// and review lookup, guarded by an OpenAPI request-validation layer.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/reviewforge/reviewgen/internal/webui"
	"github.com/reviewforge/reviewgen/pkg/schema"
	"github.com/reviewforge/reviewgen/pkg/store"
)

// SchemaGenerator produces a validated form structure for a product type.
type SchemaGenerator interface {
	Generate(ctx context.Context, productType string) (schema.FormStructure, error)
}

// Server holds the request-layer dependencies. Construct with New and mount
// the handler returned by Routes.
type Server struct {
	store     store.Store
	generator SchemaGenerator
	logger    *zap.Logger
	validate  *validator.Validate
}

// ServerOption customises a Server.
type ServerOption func(*Server)

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs the request layer around an explicit store and generator.
func New(st store.Store, generator SchemaGenerator, options ...ServerOption) *Server {
	s := &Server{
		store:     st,
		generator: generator,
		logger:    zap.NewNop(),
		validate:  newValidate(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// newValidate builds the payload validator, reporting json field names in
// violation details rather than Go struct field names.
func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Routes builds the full handler chain: API routes plus the embedded web
// client, wrapped in OpenAPI request validation and request logging.
func (s *Server) Routes() (http.Handler, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/form-structure", s.handleGenerateFormStructure)
	mux.HandleFunc("POST /api/reviews", s.handleCreateReview)
	mux.HandleFunc("GET /api/reviews/{productType}", s.handleListReviews)
	mux.Handle("/", webui.Handler())

	contract, err := newContractMiddleware()
	if err != nil {
		return nil, err
	}
	return requestLogger(s.logger, contract(mux)), nil
}

type errorBody struct {
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

func (s *Server) handleGenerateFormStructure(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProductType string `json:"productType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "Product type is required"})
		return
	}
	// The upstream call only happens once the product type is known good.
	if strings.TrimSpace(payload.ProductType) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "Product type is required"})
		return
	}

	structure, err := s.generator.Generate(r.Context(), payload.ProductType)
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorBody{
				Message: "Generated form structure is invalid",
				Details: verr.Details,
			})
			return
		}
		s.logger.Error("form structure generation failed",
			zap.String("product_type", payload.ProductType),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Failed to generate form structure"})
		return
	}

	writeJSON(w, http.StatusOK, structure)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var input store.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "Invalid review data"})
		return
	}

	if err := s.validate.Struct(input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Message: "Invalid review data",
			Details: validationDetails(err),
		})
		return
	}

	review, err := s.store.CreateReview(input)
	if err != nil {
		s.logger.Error("review creation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Failed to create review"})
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	productType := r.PathValue("productType")
	reviews := s.store.ReviewsByProductType(productType)
	writeJSON(w, http.StatusOK, reviews)
}

// validationDetails maps validator violations to the {field: [messages]}
// payload shape.
func validationDetails(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		details[field] = append(details[field], violationMessage(fe))
	}
	return details
}

func violationMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "This field is required"
	}
	return "Failed validation on rule " + fe.Tag()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
