package api

import (
	"encoding/json"
	"net/http"

	"github.com/valeko/scoreline/internal/domain/rpc"
	"github.com/valeko/scoreline/pkg/logger"
)

// MethodHandler serves the RPC endpoint.
type MethodHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewMethodHandler creates the RPC endpoint handler.
func NewMethodHandler(deps Dependencies, log logger.Logger) *MethodHandler {
	return &MethodHandler{deps: deps, log: log}
}

// HandleMethod handles POST /method. Transport and parse failures map to
// 400; everything past the JSON decode is the dispatch layer's business.
func (h *MethodHandler) HandleMethod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodPost {
		writeRPCError(w, rpc.StatusNotFound, "")
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.log.Warn(ctx, "malformed request body",
			logger.Error(err),
			logger.String("request_id", logger.RequestID(ctx)),
		)
		writeRPCError(w, rpc.StatusBadRequest, "")
		return
	}

	result, rerr := h.deps.Handle(ctx, body)
	if rerr != nil {
		writeRPCError(w, rerr.Code, rerr.Message)
		return
	}
	writeResult(w, result)
}
