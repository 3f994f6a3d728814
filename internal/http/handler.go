package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/palletform/binpack3d/internal/domain/dto"
	"github.com/palletform/binpack3d/internal/metrics"
	"github.com/palletform/binpack3d/internal/packing"
	"github.com/palletform/binpack3d/internal/service"
)

// Handler provides HTTP handlers for the packing routes.
type Handler struct {
	packer service.Packing
}

// NewHandler creates a new Handler instance.
func NewHandler(packer service.Packing) *Handler {
	return &Handler{packer: packer}
}

// Pack handles POST /api/pack requests, packing items for minimal box count
// and volume waste.
func (h *Handler) Pack(c *gin.Context) {
	h.pack(c, false)
}

// PackBalanced handles POST /api/pack/balanced requests, additionally
// rebalancing weight across the boxes chosen.
func (h *Handler) PackBalanced(c *gin.Context) {
	h.pack(c, true)
}

func (h *Handler) pack(c *gin.Context, balanced bool) {
	builder := NewResponseBuilder(c)

	var req dto.PackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := req.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	start := time.Now()

	var (
		result packing.PackedBoxList
		err    error
	)
	if balanced {
		result, err = h.packer.PackBalanced(req.ToItems(), req.ToQuantities())
	} else {
		result, err = h.packer.Pack(req.ToItems(), req.ToQuantities())
	}

	duration := time.Since(start)

	if err != nil {
		metrics.RecordPackRequest(duration, "error", 0)
		h.respondPackingError(builder, err)
		return
	}

	metrics.RecordPackRequest(duration, "success", result.Count())
	builder.SuccessOK(dto.NewPackResponse(result))
}

// respondPackingError translates a packing.Error into the matching HTTP status.
func (h *Handler) respondPackingError(builder *ResponseBuilder, err error) {
	perr, ok := err.(*packing.Error)
	if !ok {
		builder.Error(http.StatusInternalServerError, "internal server error", err)
		return
	}

	switch perr.Kind {
	case packing.ErrInvalidInput:
		builder.Error(http.StatusBadRequest, perr.Error(), err)
	case packing.ErrItemTooLarge, packing.ErrInsufficientBoxes, packing.ErrConstraintViolation:
		builder.Error(http.StatusUnprocessableEntity, perr.Error(), err)
	default:
		builder.Error(http.StatusInternalServerError, perr.Error(), err)
	}
}
