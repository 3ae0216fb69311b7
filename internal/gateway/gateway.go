// Package gateway orchestrates card transactions against the two remote
// backends: the generic card switch ("I2C") and the national debit network
// ("NAJM"). Every operation runs the same validate, build, dispatch,
// classify pipeline and returns one normalized result shape regardless
// of backend or failure kind. Nothing escapes the public boundary as an
// error; backend faults become results too.
package gateway

import (
	"context"
	"time"

	"card-gateway/internal/acquirer"
	"card-gateway/internal/common/logger"
	"card-gateway/internal/common/metrics"
	"card-gateway/internal/common/soap"
	"card-gateway/internal/najm"
	"card-gateway/internal/schema"
)

// Result codes. Transport faults carry the fault's own code instead.
const (
	CodeOK       = 200
	CodeDeclined = 422
)

// i2cSuccessCode is the card switch's approval response code.
const i2cSuccessCode = "I2C00"

const validationMessage = "Validation error: request data does not match the operation contract"

// Result is the single structured outcome every operation returns.
type Result struct {
	Code    int                    `json:"code"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Message string                 `json:"message"`
	ARN     string                 `json:"ARN,omitempty"`
}

// Config is the read-only configuration the orchestrator needs. It is
// constructed once at startup and shared safely by concurrent calls.
type Config struct {
	Acquirer          acquirer.Identity
	AllowedPrefixes   []string
	VirtualCardPrefix string
	Najm              najm.Config
}

// Backend couples one protocol invoker with the log destination its
// traffic is written to.
type Backend struct {
	Invoker soap.Invoker
	Logger  logger.Logger
}

// Backends names the two remote services the gateway dispatches to.
type Backends struct {
	I2C  Backend
	Najm Backend
}

// Gateway exposes one operation per transaction type. Each call is
// stateless and fully synchronous: one backend round trip, no retries.
type Gateway struct {
	cfg      Config
	backends Backends
}

func New(cfg Config, backends Backends) *Gateway {
	if backends.I2C.Logger == nil {
		backends.I2C.Logger = logger.NewStructured("info", "json")
	}
	if backends.Najm.Logger == nil {
		backends.Najm.Logger = logger.NewStructured("info", "json")
	}
	return &Gateway{
		cfg:      cfg,
		backends: backends,
	}
}

type backend int

const (
	backendI2C backend = iota
	backendNajm
)

func (b backend) String() string {
	if b == backendNajm {
		return "najm"
	}
	return "i2c"
}

// operation parameterizes the shared pipeline for one transaction type.
type operation struct {
	name    string
	method  string
	backend backend
	schema  schema.Object

	// check runs extra validation beyond shape congruence.
	check func(data map[string]interface{}) bool
	// build produces the backend envelope and, for card-switch calls, the
	// per-call ARN.
	build func(data map[string]interface{}) (envelope map[string]interface{}, arn string)
	// logCopy renders the envelope safe for logging; nil means log as-is.
	logCopy func(envelope map[string]interface{}) map[string]interface{}
	// logRequest renders the raw caller data safe for logging; nil means
	// log as-is.
	logRequest func(data map[string]interface{}) map[string]interface{}
	// succeeded classifies a transport-level success reply.
	succeeded func(reply soap.Reply) bool
}

// execute runs the validate → build → dispatch → classify pipeline.
func (g *Gateway) execute(ctx context.Context, op operation, data map[string]interface{}) Result {
	start := time.Now()
	metrics.TransactionsActive.WithLabelValues(op.name).Inc()
	defer func() {
		metrics.TransactionsActive.WithLabelValues(op.name).Dec()
		metrics.TransactionDuration.WithLabelValues(op.name).Observe(time.Since(start).Seconds())
	}()

	log := g.backend(op.backend).Logger.WithFields(map[string]interface{}{
		"operation": op.name,
		"backend":   op.backend.String(),
	})

	if !schema.Matches(data, op.schema) || (op.check != nil && !op.check(data)) {
		result := Result{Code: CodeDeclined, Message: validationMessage}
		loggedData := data
		if op.logRequest != nil {
			loggedData = op.logRequest(data)
		}
		log.Info("transaction rejected at validation", map[string]interface{}{
			"request": logger.Serialize(loggedData),
			"result":  logger.Serialize(result),
		})
		metrics.TransactionsFailed.WithLabelValues(op.name, "VALIDATION_REJECTED").Inc()
		return result
	}

	envelope, arn := op.build(data)

	logged := envelope
	if op.logCopy != nil {
		logged = op.logCopy(envelope)
	}
	log.Info("dispatching transaction", map[string]interface{}{
		"method":  op.method,
		"request": logger.Serialize(logged),
	})

	reply, err := g.backend(op.backend).Invoker.Invoke(ctx, op.method, envelope)
	if err != nil {
		result := faultResult(err)
		log.Error("transaction transport fault", map[string]interface{}{
			"method": op.method,
			"result": logger.Serialize(result),
		})
		metrics.TransactionsFailed.WithLabelValues(op.name, "TRANSPORT_FAULT").Inc()
		return result
	}

	result := Result{Data: reply, ARN: arn}
	if op.succeeded(reply) {
		result.Code = CodeOK
		metrics.TransactionsCompleted.WithLabelValues(op.name, op.backend.String()).Inc()
	} else {
		result.Code = CodeDeclined
		result.Message = declineMessage(reply)
		metrics.TransactionsFailed.WithLabelValues(op.name, "BACKEND_DECLINED").Inc()
	}

	log.Info("transaction completed", map[string]interface{}{
		"method": op.method,
		"result": logger.Serialize(result),
	})
	return result
}

func (g *Gateway) backend(b backend) Backend {
	if b == backendNajm {
		return g.backends.Najm
	}
	return g.backends.I2C
}

// faultResult converts a transport failure into a normalized result
// carrying the fault's own code and message, with no data or ARN attached.
func faultResult(err error) Result {
	if fault, ok := err.(*soap.Fault); ok {
		return Result{Code: fault.Code, Message: fault.Message}
	}
	return Result{Code: 500, Message: err.Error()}
}

// declineMessage surfaces the backend's own description of a declined
// transaction when it offers one.
func declineMessage(reply soap.Reply) string {
	if desc, ok := reply["ResponseDesc"].(string); ok && desc != "" {
		return desc
	}
	if desc, ok := reply["error_description"].(string); ok && desc != "" {
		return desc
	}
	if details, ok := reply["ExceptionDetails"].(map[string]interface{}); ok {
		if desc, ok := details["error_description"].(string); ok && desc != "" {
			return desc
		}
	}
	return "Transaction declined by backend"
}

// i2cSucceeded classifies a card-switch reply by its business response code.
func i2cSucceeded(reply soap.Reply) bool {
	code, _ := reply["ResponseCode"].(string)
	return code == i2cSuccessCode
}
