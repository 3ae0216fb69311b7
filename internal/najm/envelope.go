// Package najm builds the header/body message envelope for the national
// debit-network backend and classifies its replies.
package najm

import (
	"fmt"
	"strings"
	"time"

	"card-gateway/internal/card"
)

// Config carries the static routing constants every debit envelope embeds.
type Config struct {
	Version           string `mapstructure:"version"`
	MsgType           string `mapstructure:"msg_type"`
	MsgFunction       string `mapstructure:"msg_function"`
	SrcApplication    string `mapstructure:"src_application"`
	TargetApplication string `mapstructure:"target_application"`
	BankID            string `mapstructure:"bank_id"`
	ChannelName       string `mapstructure:"channel_name"`
	MerchantID        string `mapstructure:"merchant_id"`
	TerminalID        string `mapstructure:"terminal_id"`
}

// Validate checks that every routing constant is configured.
func (c Config) Validate() error {
	fields := map[string]string{
		"version":            c.Version,
		"msg_type":           c.MsgType,
		"msg_function":       c.MsgFunction,
		"src_application":    c.SrcApplication,
		"target_application": c.TargetApplication,
		"bank_id":            c.BankID,
		"channel_name":       c.ChannelName,
		"merchant_id":        c.MerchantID,
		"terminal_id":        c.TerminalID,
	}
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("najm.%s is required", name)
		}
	}
	return nil
}

// Reply classification constants. A debit reply is successful only when all
// three hold at once.
const (
	successStatus      = "S"
	successDescription = "success"
)

// BuildDebitEnvelope assembles the header/body envelope for one debit call.
// Constant fields come from the routing config; per-call fields come from
// the already-validated request. The header timestamp is captured here, at
// build time.
func BuildDebitEnvelope(req map[string]interface{}, cfg Config) map[string]interface{} {
	cardBlock, _ := req["Card"].(map[string]interface{})

	return map[string]interface{}{
		"Header": map[string]interface{}{
			"Version":           cfg.Version,
			"MsgType":           cfg.MsgType,
			"MsgFunction":       cfg.MsgFunction,
			"SrcApplication":    cfg.SrcApplication,
			"TargetApplication": cfg.TargetApplication,
			"BankId":            cfg.BankID,
			"TrackingId":        stringField(cardBlock, "ReferenceID"),
			"Timestamp":         time.Now().Format(time.RFC3339),
		},
		"Body": map[string]interface{}{
			"CardNumber":       stringField(cardBlock, "Number"),
			"ExpiryDate":       stringField(cardBlock, "ExpiryDate"),
			"ChannelName":      cfg.ChannelName,
			"TransactionRefId": stringField(cardBlock, "ReferenceID"),
			"Amount":           req["Amount"],
			"MerchantId":       cfg.MerchantID,
			"TerminalId":       cfg.TerminalID,
		},
	}
}

// LogCopy returns a deep copy of a debit envelope with the card number
// masked and the expiry fully redacted, suitable for logging. The original
// envelope is left untouched.
func LogCopy(envelope map[string]interface{}) map[string]interface{} {
	copied := make(map[string]interface{}, len(envelope))
	for k, v := range envelope {
		if m, ok := v.(map[string]interface{}); ok {
			inner := make(map[string]interface{}, len(m))
			for ik, iv := range m {
				inner[ik] = iv
			}
			copied[k] = inner
			continue
		}
		copied[k] = v
	}

	if body, ok := copied["Body"].(map[string]interface{}); ok {
		if pan, ok := body["CardNumber"].(string); ok {
			body["CardNumber"] = card.MaskPAN(pan)
		}
		if expiry, ok := body["ExpiryDate"].(string); ok {
			body["ExpiryDate"] = card.MaskExpiry(expiry)
		}
	}
	return copied
}

// Succeeded reports whether a debit reply declares success: status equals
// the single-character success code (case-insensitive), the error
// description equals "success" (case-insensitive) and the error code is
// numeric zero. Any other combination is a declared failure.
func Succeeded(reply map[string]interface{}) bool {
	details := exceptionDetails(reply)

	status, _ := details["status"].(string)
	description, _ := details["error_description"].(string)

	return strings.EqualFold(status, successStatus) &&
		strings.EqualFold(description, successDescription) &&
		zeroCode(details["error_code"])
}

// exceptionDetails returns the nested exception-details block when the
// backend wraps its outcome, or the reply itself when the fields arrive at
// the top level.
func exceptionDetails(reply map[string]interface{}) map[string]interface{} {
	if block, ok := reply["ExceptionDetails"].(map[string]interface{}); ok {
		return block
	}
	return reply
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// zeroCode accepts the numeric-zero renderings different codecs produce for
// the error code field.
func zeroCode(v interface{}) bool {
	switch code := v.(type) {
	case int:
		return code == 0
	case int32:
		return code == 0
	case int64:
		return code == 0
	case float64:
		return code == 0
	case string:
		return code == "0"
	default:
		return false
	}
}
