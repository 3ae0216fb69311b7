// Package api exposes the five gateway operations over HTTP. Request bodies
// get a coarse shape check at this boundary; the structural per-operation
// contract is enforced inside the orchestrator.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"card-gateway/internal/common/errors"
	"card-gateway/internal/common/logger"
	"card-gateway/internal/common/observability"
	"card-gateway/internal/gateway"

	"github.com/xeipuuv/gojsonschema"
)

// Service is the operation surface the handlers dispatch to.
type Service interface {
	GenerateCard(ctx context.Context, data map[string]interface{}) gateway.Result
	Deposit(ctx context.Context, data map[string]interface{}) gateway.Result
	CheckBalance(ctx context.Context, data map[string]interface{}, secretCode string) gateway.Result
	Withdraw(ctx context.Context, data map[string]interface{}) gateway.Result
	ActivateCard(ctx context.Context, data map[string]interface{}) gateway.Result
}

const bodySchema = `{
	"type": "object"
}`

const balanceBodySchema = `{
	"type": "object",
	"required": ["data", "secretCode"],
	"properties": {
		"data": {"type": "object"},
		"secretCode": {"type": "string"}
	},
	"additionalProperties": false
}`

type Handler struct {
	service Service
	logger  logger.Logger
	obs     *observability.Observability
}

func NewHandler(service Service, log logger.Logger, obs *observability.Observability) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"component": "api"}),
		obs:     obs,
	}
}

// Register mounts the operation routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/cards", h.generateCard)
	mux.HandleFunc("POST /v1/cards/load", h.deposit)
	mux.HandleFunc("POST /v1/cards/balance", h.checkBalance)
	mux.HandleFunc("POST /v1/cards/debit", h.withdraw)
	mux.HandleFunc("POST /v1/cards/activate", h.activateCard)
}

func (h *Handler) generateCard(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decodeBody(w, r, bodySchema)
	if !ok {
		return
	}
	start := time.Now()
	h.respond(w, r, "generateCard", start, h.service.GenerateCard(r.Context(), data))
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decodeBody(w, r, bodySchema)
	if !ok {
		return
	}
	start := time.Now()
	h.respond(w, r, "deposit", start, h.service.Deposit(r.Context(), data))
}

func (h *Handler) checkBalance(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeBody(w, r, balanceBodySchema)
	if !ok {
		return
	}
	data, _ := body["data"].(map[string]interface{})
	secret, _ := body["secretCode"].(string)
	start := time.Now()
	h.respond(w, r, "checkBalance", start, h.service.CheckBalance(r.Context(), data, secret))
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decodeBody(w, r, bodySchema)
	if !ok {
		return
	}
	start := time.Now()
	h.respond(w, r, "withdraw", start, h.service.Withdraw(r.Context(), data))
}

func (h *Handler) activateCard(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decodeBody(w, r, bodySchema)
	if !ok {
		return
	}
	start := time.Now()
	h.respond(w, r, "activateCard", start, h.service.ActivateCard(r.Context(), data))
}

// decodeBody parses the JSON request body and checks it against the given
// coarse schema. On failure it writes a 400 and returns ok=false.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, schemaJSON string) (map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, errors.NewInputParsingFailedError(err))
		return nil, false
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(body),
	)
	if err != nil {
		h.writeError(w, errors.NewInputParsingFailedError(err))
		return nil, false
	}
	if !result.Valid() {
		gerr := errors.NewInputParsingFailedError(nil)
		gerr.Details = result.Errors()[0].String()
		h.writeError(w, gerr)
		return nil, false
	}

	return body, true
}

// respond records per-operation metrics and writes the normalized result.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, operation string, start time.Time, result gateway.Result) {
	if h.obs != nil {
		outcome := "completed"
		if result.Code != gateway.CodeOK {
			outcome = "failed"
		}
		h.obs.RecordTransaction(r.Context(), operation, outcome)
		h.obs.RecordTransactionDuration(r.Context(), operation, time.Since(start))
	}
	h.writeResult(w, result)
}

func (h *Handler) writeResult(w http.ResponseWriter, result gateway.Result) {
	status := http.StatusBadGateway
	switch result.Code {
	case gateway.CodeOK:
		status = http.StatusOK
	case gateway.CodeDeclined:
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to encode result", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Handler) writeError(w http.ResponseWriter, gerr *errors.GatewayError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(gerr); err != nil {
		h.logger.Error("failed to encode error", map[string]interface{}{"error": err.Error()})
	}
}
