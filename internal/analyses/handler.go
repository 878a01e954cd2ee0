package analyses

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/shared/server/middleware"
	"resume-matcher/internal/shared/server/respond"
)

// MaxRequestBytes bounds a submission body. Base64 inflates a 10MB document by a third.
const MaxRequestBytes = 16 << 20

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.submit)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
}

func (h *Handler) submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBytes)

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, CodeValidation, msgResumeFileTooLarge, nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, CodeValidation, "Invalid request body", nil)
		return
	}

	if authUser := middleware.UserIDFromContext(c); authUser != "" {
		if bodyUser := strings.TrimSpace(req.UserID); bodyUser != "" && bodyUser != authUser {
			respond.Error(c, http.StatusForbidden, CodeForbidden, "Cannot submit an analysis for another user", nil)
			return
		}
		req.UserID = authUser
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	rec, err := h.Svc.Submit(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Set("analysisId", rec.ID)
	respond.OK(c, rec)
}

func (h *Handler) get(c *gin.Context) {
	analysisID := strings.TrimSpace(c.Param("id"))
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, CodeValidation, "analysis id is required", nil)
		return
	}
	c.Set("analysisId", analysisID)

	rec, err := h.Svc.GetForOwner(c.Request.Context(), analysisID, middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) list(c *gin.Context) {
	recs, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, recs)
}

func writeError(c *gin.Context, err error) {
	var validationErr *ValidationError
	var invocationErr *InvocationError
	var storageErr *StorageError
	switch {
	case errors.As(err, &validationErr):
		var details interface{}
		if validationErr.Field != "" {
			details = []map[string]string{{"field": validationErr.Field, "issue": "invalid"}}
		}
		respond.Error(c, http.StatusBadRequest, CodeValidation, validationErr.Message, details)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, CodeNotFound, "analysis not found", nil)
	case errors.As(err, &invocationErr):
		respond.Error(c, http.StatusInternalServerError, CodeAnalysisFailed, invocationErr.Error(), nil)
	case errors.As(err, &storageErr):
		message := "failed to load analysis"
		if storageErr.Op == "create" {
			message = "failed to save analysis"
		}
		respond.Error(c, http.StatusInternalServerError, CodeStorage, message, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}
