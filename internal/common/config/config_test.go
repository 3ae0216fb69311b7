package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
app:
  name: card-gateway-test
server:
  address: ":9090"
i2c:
  endpoint: https://switch.test/cardws
  acquirer:
    en_user_id: user
    en_pwd: pwd
  allowed_starting_numbers: "508877, 423456,"
  virtual_card_prefix: "50887700"
najm:
  endpoint: https://debit.test/najmws
  routing:
    version: "1.0"
    msg_type: "1200"
    msg_function: "200"
    src_application: GATEWAY
    target_application: NAJM
    bank_id: "0001"
    channel_name: WEB
    merchant_id: M-9000
    terminal_id: T-0100
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := LoadFromFile(writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "card-gateway-test", cfg.App.Name)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "user", cfg.I2C.Acquirer.EnUserID)
	assert.Equal(t, "0001", cfg.Najm.Routing.BankID)

	// defaults applied
	assert.Equal(t, 30000, cfg.I2C.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestAllowedPrefixes(t *testing.T) {
	cfg := I2CConfig{AllowedStartingNumbers: "508877, 423456,"}
	assert.Equal(t, []string{"508877", "423456"}, cfg.AllowedPrefixes())

	assert.Nil(t, I2CConfig{}.AllowedPrefixes())
}

func TestValidateRejectsIncompleteConfig(t *testing.T) {
	cfg := &Config{}
	assert.EqualError(t, cfg.validate(), "i2c.endpoint is required")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, GetDuration(30000))
}
