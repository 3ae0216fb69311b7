package najm

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Version:           "1.0",
		MsgType:           "1200",
		MsgFunction:       "200",
		SrcApplication:    "GATEWAY",
		TargetApplication: "NAJM",
		BankID:            "0001",
		ChannelName:       "WEB",
		MerchantID:        "M-9000",
		TerminalID:        "T-0100",
	}
}

func debitRequest() map[string]interface{} {
	return map[string]interface{}{
		"CardAcceptor": map[string]interface{}{"Id": "A1"},
		"Card": map[string]interface{}{
			"Number":      "4111111111111111",
			"ExpiryDate":  "2508",
			"ReferenceID": "TRX-42",
		},
		"ApplyFee": "N",
		"Amount":   "150.00",
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, testConfig().Validate())

	incomplete := testConfig()
	incomplete.TerminalID = ""
	assert.EqualError(t, incomplete.Validate(), "najm.terminal_id is required")
}

func TestBuildDebitEnvelope(t *testing.T) {
	envelope := BuildDebitEnvelope(debitRequest(), testConfig())

	header, ok := envelope["Header"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1.0", header["Version"])
	assert.Equal(t, "1200", header["MsgType"])
	assert.Equal(t, "200", header["MsgFunction"])
	assert.Equal(t, "GATEWAY", header["SrcApplication"])
	assert.Equal(t, "NAJM", header["TargetApplication"])
	assert.Equal(t, "0001", header["BankId"])
	assert.Equal(t, "TRX-42", header["TrackingId"])

	timestamp, ok := header["Timestamp"].(string)
	require.True(t, ok)
	require.NotEmpty(t, timestamp)
	_, err := time.Parse(time.RFC3339, timestamp)
	assert.NoError(t, err)

	body, ok := envelope["Body"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "4111111111111111", body["CardNumber"])
	assert.Equal(t, "2508", body["ExpiryDate"])
	assert.Equal(t, "WEB", body["ChannelName"])
	assert.Equal(t, "TRX-42", body["TransactionRefId"])
	assert.Equal(t, "150.00", body["Amount"])
	assert.Equal(t, "M-9000", body["MerchantId"])
	assert.Equal(t, "T-0100", body["TerminalId"])
}

func TestLogCopyMasksWithoutMutating(t *testing.T) {
	envelope := BuildDebitEnvelope(debitRequest(), testConfig())

	logged := LogCopy(envelope)

	loggedBody := logged["Body"].(map[string]interface{})
	assert.Equal(t, strings.Repeat("*", 12)+"1111", loggedBody["CardNumber"])
	assert.Equal(t, "****", loggedBody["ExpiryDate"])

	// the envelope that goes on the wire keeps the raw values
	wireBody := envelope["Body"].(map[string]interface{})
	assert.Equal(t, "4111111111111111", wireBody["CardNumber"])
	assert.Equal(t, "2508", wireBody["ExpiryDate"])
}

func TestSucceeded(t *testing.T) {
	tests := []struct {
		name  string
		reply map[string]interface{}
		want  bool
	}{
		{
			name:  "all three conditions hold",
			reply: map[string]interface{}{"status": "S", "error_description": "Success", "error_code": 0},
			want:  true,
		},
		{
			name:  "case-insensitive status and description",
			reply: map[string]interface{}{"status": "s", "error_description": "SUCCESS", "error_code": 0},
			want:  true,
		},
		{
			name:  "float64 zero from JSON decoding",
			reply: map[string]interface{}{"status": "S", "error_description": "Success", "error_code": float64(0)},
			want:  true,
		},
		{
			name:  "string zero from XML decoding",
			reply: map[string]interface{}{"status": "S", "error_description": "Success", "error_code": "0"},
			want:  true,
		},
		{
			name:  "non-zero error code fails",
			reply: map[string]interface{}{"status": "S", "error_description": "Success", "error_code": 1},
			want:  false,
		},
		{
			name:  "wrong status fails",
			reply: map[string]interface{}{"status": "F", "error_description": "Success", "error_code": 0},
			want:  false,
		},
		{
			name:  "wrong description fails",
			reply: map[string]interface{}{"status": "S", "error_description": "Declined", "error_code": 0},
			want:  false,
		},
		{
			name:  "missing error code fails",
			reply: map[string]interface{}{"status": "S", "error_description": "Success"},
			want:  false,
		},
		{
			name: "nested exception details block",
			reply: map[string]interface{}{
				"ExceptionDetails": map[string]interface{}{
					"status":             "S",
					"error_description":  "Success",
					"error_code":         0,
					"transaction_ref_id": "TRX-42",
				},
			},
			want: true,
		},
		{
			name:  "empty reply fails",
			reply: map[string]interface{}{},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Succeeded(tt.reply))
		})
	}
}
