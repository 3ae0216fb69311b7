// Package acquirer builds the per-call acquirer identity block that every
// card-switch request carries, including the Acquisition Reference Number
// used to correlate logs and results with the downstream reply.
package acquirer

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ARNLength is the fixed width of every generated reference number.
const ARNLength = 20

// Identity holds the static merchant credentials for the card-switch backend.
type Identity struct {
	EnUserID string
	EnPwd    string
}

// NewARN derives an opaque 20-character reference token from a
// cryptographic digest seeded with the wall clock, a process-unique UUID and
// random bytes. It is a correlation token, not a security credential.
func NewARN() string {
	seed := make([]byte, 64)
	_, _ = rand.Read(seed)

	sum := sha512.Sum512([]byte(fmt.Sprintf("%d%s%x", time.Now().UnixNano(), uuid.NewString(), seed)))
	return hex.EncodeToString(sum[:])[:ARNLength]
}

// BuildContext produces the acquirer block for one call, with a fresh ARN.
func BuildContext(id Identity) map[string]interface{} {
	return map[string]interface{}{
		"Acquirer": map[string]interface{}{
			"EnUserID": id.EnUserID,
			"EnPwd":    id.EnPwd,
			"ARN":      NewARN(),
		},
	}
}

// Merge combines the acquirer context with caller data as a shallow
// top-level union. On key collision the acquirer-owned entry wins.
func Merge(ctx, data map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(ctx)+len(data))
	for k, v := range data {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return merged
}

// ARNOf extracts the reference number from a built context. It returns the
// empty string if the context does not carry one.
func ARNOf(ctx map[string]interface{}) string {
	block, ok := ctx["Acquirer"].(map[string]interface{})
	if !ok {
		return ""
	}
	arn, _ := block["ARN"].(string)
	return arn
}
