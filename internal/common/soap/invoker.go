// Package soap provides the narrow RPC contract the gateway depends on and
// a SOAP-over-HTTP implementation of it. The core never sees transport
// details; failures surface as Fault values, never as panics.
package soap

import (
	"context"
	"fmt"
)

// Reply is the opaque mapping a backend returns. Which fields mean what is
// backend-specific and decided by the caller.
type Reply map[string]interface{}

// Invoker dispatches one named backend operation with a request envelope.
type Invoker interface {
	Invoke(ctx context.Context, method string, envelope map[string]interface{}) (Reply, error)
}

// Fault is a transport-level failure: connection errors, non-XML replies,
// or an explicit SOAP fault from the backend.
type Fault struct {
	Code    int
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %d: %s", f.Code, f.Message)
}
