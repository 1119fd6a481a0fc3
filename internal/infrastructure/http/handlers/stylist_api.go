// Package handlers provides the HTTP handlers for the stylist JSON API.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/stylelens/v1/internal/domain/style"
	"github.com/stylelens/v1/internal/infrastructure/config"
	"github.com/stylelens/v1/internal/ports/inbound"
	"github.com/stylelens/v1/pkg/errors"
	"go.uber.org/zap"
)

// APIResponse is the uniform success envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// StylistAPIHandlers handles the stylist API requests.
type StylistAPIHandlers struct {
	service  inbound.StylistService
	upload   config.UploadConfig
	validate *validator.Validate
	logger   *zap.Logger
}

// NewStylistAPIHandlers creates the stylist API handlers.
func NewStylistAPIHandlers(
	service inbound.StylistService,
	upload config.UploadConfig,
	logger *zap.Logger,
) *StylistAPIHandlers {
	return &StylistAPIHandlers{
		service:  service,
		upload:   upload,
		validate: validator.New(),
		logger:   logger,
	}
}

// analyzeForm carries the multipart form fields of an analyze request.
type analyzeForm struct {
	Occasion       string `validate:"required"`
	Budget         int    `validate:"min=50,max=1000"`
	Colors         []string
	Brands         string `validate:"max=500"`
	Requirements   string `validate:"max=2000"`
	SocialUsername string `validate:"max=100"`
}

// Analyze handles POST /api/v1/analyze. The request is a multipart form
// with an image part plus the style preference fields.
func (h *StylistAPIHandlers) Analyze(w http.ResponseWriter, r *http.Request) {
	// The extra megabyte covers the non-image form fields.
	r.Body = http.MaxBytesReader(w, r.Body, h.upload.MaxImageBytes+1<<20)

	if err := r.ParseMultipartForm(h.upload.MaxImageBytes); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			h.writeError(w, r, errors.New(errors.CodePayloadTooLarge, "Upload too large", ""))
			return
		}
		h.writeError(w, r, errors.NewBadRequestError("Invalid multipart form"))
		return
	}

	image, mimeType, appErr := h.readImage(r)
	if appErr != nil {
		h.writeError(w, r, appErr)
		return
	}

	form, appErr := h.readForm(r)
	if appErr != nil {
		h.writeError(w, r, appErr)
		return
	}

	result, err := h.service.Analyze(r.Context(), inbound.AnalyzeCommand{
		Image:          image,
		ImageMIMEType:  mimeType,
		Occasion:       form.Occasion,
		Budget:         "$" + strconv.Itoa(form.Budget),
		Colors:         form.Colors,
		Brands:         form.Brands,
		Requirements:   form.Requirements,
		SocialUsername: form.SocialUsername,
	})
	if err != nil {
		h.writeError(w, r, errors.Wrap(err, "Analysis failed"))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
		Message: "Analysis completed",
	})
}

// SearchProducts handles GET /api/v1/products/search. An empty query browses
// the catalog from the top.
func (h *StylistAPIHandlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := h.queryLimit(r, 10)

	products, err := h.service.SearchProducts(r.Context(), term, limit)
	if err != nil {
		h.writeError(w, r, errors.Wrap(err, "Product search failed"))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"term":     term,
			"products": products,
		},
	})
}

// Recommendations handles GET /api/v1/products/{id}/recommendations.
func (h *StylistAPIHandlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		h.writeError(w, r, errors.NewBadRequestError("Product ID is required"))
		return
	}
	limit := h.queryLimit(r, 4)

	products, err := h.service.RelatedProducts(r.Context(), productID, limit)
	if err != nil {
		h.writeError(w, r, errors.Wrap(err, "Recommendation lookup failed"))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"product_id": productID,
			"products":   products,
		},
	})
}

// StyleHints handles GET /api/v1/social/{username}/hints.
func (h *StylistAPIHandlers) StyleHints(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		h.writeError(w, r, errors.NewBadRequestError("Username is required"))
		return
	}

	hints, err := h.service.StyleHints(r.Context(), username)
	if err != nil {
		h.writeError(w, r, errors.Wrap(err, "Style hint lookup failed"))
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"username": username,
			"hints":    hints,
		},
	})
}

// Preferences handles GET /api/v1/preferences. It exposes the fixed choice
// sets so the UI never hardcodes them.
func (h *StylistAPIHandlers) Preferences(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"occasions": style.Occasions,
			"colors":    style.ColorPalette,
			"budget": map[string]int{
				"min":  style.BudgetMin,
				"max":  style.BudgetMax,
				"step": style.BudgetStep,
			},
		},
	})
}

// readImage extracts and bounds the uploaded image part.
func (h *StylistAPIHandlers) readImage(r *http.Request) ([]byte, string, *errors.AppError) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, "", errors.NewValidationError("An image file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", errors.NewBadRequestError("Failed to read uploaded image")
	}
	if len(data) == 0 {
		return nil, "", errors.NewValidationError("The uploaded image is empty")
	}
	if int64(len(data)) > h.upload.MaxImageBytes {
		return nil, "", errors.New(errors.CodePayloadTooLarge, "Image too large", "")
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if !h.allowedType(mimeType) {
		return nil, "", errors.New(
			errors.CodeUnsupportedMedia,
			"Unsupported image type",
			"Allowed types: "+strings.Join(h.upload.AllowedTypes, ", "),
		)
	}

	return data, mimeType, nil
}

// readForm extracts and validates the preference fields.
func (h *StylistAPIHandlers) readForm(r *http.Request) (*analyzeForm, *errors.AppError) {
	form := &analyzeForm{
		Occasion:       strings.TrimSpace(r.FormValue("occasion")),
		Budget:         300,
		Brands:         strings.TrimSpace(r.FormValue("brands")),
		Requirements:   strings.TrimSpace(r.FormValue("requirements")),
		SocialUsername: strings.TrimSpace(r.FormValue("social_username")),
	}

	if raw := r.FormValue("budget"); raw != "" {
		budget, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.NewValidationError("Budget must be a number")
		}
		// Snap to the slider's step so $275 behaves like $250.
		form.Budget = budget - budget%style.BudgetStep
	}

	// Colors arrive either as repeated fields or one comma-separated value.
	for _, value := range r.Form["colors"] {
		for _, color := range strings.Split(value, ",") {
			if color = strings.TrimSpace(color); color != "" {
				form.Colors = append(form.Colors, color)
			}
		}
	}

	if err := h.validate.Struct(form); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !style.ValidOccasion(form.Occasion) {
		return nil, errors.NewValidationError("Unknown occasion: " + form.Occasion)
	}
	for _, color := range form.Colors {
		if !style.ValidColor(color) {
			return nil, errors.NewValidationError("Unknown color: " + color)
		}
	}

	return form, nil
}

func (h *StylistAPIHandlers) allowedType(mimeType string) bool {
	for _, allowed := range h.upload.AllowedTypes {
		if strings.EqualFold(allowed, mimeType) {
			return true
		}
	}
	return false
}

func (h *StylistAPIHandlers) queryLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return fallback
	}
	if limit > 50 {
		limit = 50
	}
	return limit
}

func (h *StylistAPIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func (h *StylistAPIHandlers) writeError(w http.ResponseWriter, r *http.Request, appErr *errors.AppError) {
	requestID := chimiddleware.GetReqID(r.Context())

	if appErr.StatusCode() >= 500 {
		h.logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.String("code", string(appErr.Code)),
			zap.Error(appErr),
		)
	}

	h.writeJSON(w, appErr.StatusCode(), errors.ToErrorResponse(appErr, requestID))
}
