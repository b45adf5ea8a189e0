package record

import (
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/strlens/analyzer/internal/pkg/apperr"
	"github.com/strlens/analyzer/internal/pkg/response"
	"go.uber.org/zap"
)

var errNotAString = errors.New("'value' must be a string")

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/strings")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/filter-by-natural-language", h.filterByNaturalLanguage)
	g.GET("/:value", h.get)
	g.DELETE("/:value", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateStringDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}
	value, err := dto.parse()
	if errors.Is(err, errNotAString) {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), value)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, rec)
}

func (h *Handler) get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("value"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, rec)
}

func (h *Handler) list(c *gin.Context) {
	f, applied, err := listParams(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	data, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, gin.H{
		"data":            data,
		"count":           len(data),
		"filters_applied": applied,
	})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("value")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) filterByNaturalLanguage(c *gin.Context) {
	q := c.Query("query")
	if q == "" {
		response.BadRequest(c, "Missing query")
		return
	}
	in, data, err := h.svc.FilterByNaturalLanguage(c.Request.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUnsatisfiableFilter):
			response.UnprocessableEntity(c, "Conflicting filters: "+err.Error())
		case errors.Is(err, apperr.ErrUnparseableQuery):
			response.BadRequest(c, "Unable to parse natural language query")
		default:
			h.fail(c, err)
		}
		return
	}
	response.OK(c, gin.H{
		"data":              data,
		"count":             len(data),
		"interpreted_query": in,
	})
}

// fail reports err with the status its class maps to. Anything that is not a
// caller error is logged and answered with an opaque 500.
func (h *Handler) fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= 500 {
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	response.Error(c, status, apperr.Message(err))
}
