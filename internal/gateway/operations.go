package gateway

import (
	"context"

	"card-gateway/internal/acquirer"
	"card-gateway/internal/card"
	"card-gateway/internal/common/soap"
	"card-gateway/internal/najm"
)

// Backend method names, as the remote services register them.
const (
	methodAddCard      = "AddCard"
	methodCreditFunds  = "CreditFunds"
	methodBalance      = "balanceInquiry"
	methodCardDebit    = "CARD_DEBIT"
	methodActivateCard = "activateCard"
)

// GenerateCard issues a new prepaid card on the card switch. Beyond shape
// congruence, the requested starting numbers must begin with a permitted
// card-bin prefix.
func (g *Gateway) GenerateCard(ctx context.Context, data map[string]interface{}) Result {
	return g.execute(ctx, operation{
		name:      "generateCard",
		method:    methodAddCard,
		backend:   backendI2C,
		schema:    addCardSchema,
		check:     g.startingNumbersAllowed,
		build:     g.buildAcquirerEnvelope,
		succeeded: i2cSucceeded,
	}, data)
}

// Deposit loads funds onto an existing card via the card switch.
func (g *Gateway) Deposit(ctx context.Context, data map[string]interface{}) Result {
	return g.execute(ctx, operation{
		name:      "deposit",
		method:    methodCreditFunds,
		backend:   backendI2C,
		schema:    loadCardSchema,
		build:     g.buildAcquirerEnvelope,
		succeeded: i2cSucceeded,
	}, data)
}

// CheckBalance queries a card's balance. The caller-supplied secret code is
// routed to the PIN or cryptogram field depending on the card's BIN policy
// and is never written to the logs.
func (g *Gateway) CheckBalance(ctx context.Context, data map[string]interface{}, secretCode string) Result {
	var route card.SecretRoute

	return g.execute(ctx, operation{
		name:    "checkBalance",
		method:  methodBalance,
		backend: backendI2C,
		schema:  checkBalanceSchema,
		build: func(data map[string]interface{}) (map[string]interface{}, string) {
			cardBlock, _ := data["Card"].(map[string]interface{})
			reference, _ := cardBlock["ReferenceID"].(string)
			route = card.ClassifySecret(reference, g.cfg.VirtualCardPrefix)

			withSecret := make(map[string]interface{}, len(cardBlock)+1)
			for k, v := range cardBlock {
				withSecret[k] = v
			}
			withSecret[route.Field] = secretCode

			augmented := make(map[string]interface{}, len(data))
			for k, v := range data {
				augmented[k] = v
			}
			augmented["Card"] = withSecret

			acquirerCtx := acquirer.BuildContext(g.cfg.Acquirer)
			return acquirer.Merge(acquirerCtx, augmented), acquirer.ARNOf(acquirerCtx)
		},
		logCopy: func(envelope map[string]interface{}) map[string]interface{} {
			logged := make(map[string]interface{}, len(envelope))
			for k, v := range envelope {
				logged[k] = v
			}
			if cardBlock, ok := logged["Card"].(map[string]interface{}); ok {
				masked := make(map[string]interface{}, len(cardBlock))
				for k, v := range cardBlock {
					masked[k] = v
				}
				masked["ReferenceID"] = route.MaskedCardNumber
				masked[route.Field] = "****"
				logged["Card"] = masked
			}
			return logged
		},
		succeeded: i2cSucceeded,
	}, data)
}

// Withdraw debits a card through the national debit network. The request
// payload is masked in every log line; the wire envelope stays unmasked.
func (g *Gateway) Withdraw(ctx context.Context, data map[string]interface{}) Result {
	return g.execute(ctx, operation{
		name:    "withdraw",
		method:  methodCardDebit,
		backend: backendNajm,
		schema:  debitFundsSchema,
		build: func(data map[string]interface{}) (map[string]interface{}, string) {
			return najm.BuildDebitEnvelope(data, g.cfg.Najm), ""
		},
		logCopy:    najm.LogCopy,
		logRequest: maskDebitRequest,
		succeeded:  func(reply soap.Reply) bool { return najm.Succeeded(reply) },
	}, data)
}

// ActivateCard activates an issued card on the card switch.
func (g *Gateway) ActivateCard(ctx context.Context, data map[string]interface{}) Result {
	return g.execute(ctx, operation{
		name:      "activateCard",
		method:    methodActivateCard,
		backend:   backendI2C,
		schema:    activateCardSchema,
		build:     g.buildAcquirerEnvelope,
		succeeded: i2cSucceeded,
	}, data)
}

// buildAcquirerEnvelope merges the static acquirer identity and a fresh ARN
// into the caller data. Acquirer-owned keys win on collision.
func (g *Gateway) buildAcquirerEnvelope(data map[string]interface{}) (map[string]interface{}, string) {
	acquirerCtx := acquirer.BuildContext(g.cfg.Acquirer)
	return acquirer.Merge(acquirerCtx, data), acquirer.ARNOf(acquirerCtx)
}

// maskDebitRequest redacts the card fields of a raw debit request before it
// is written to a log line. Tolerates any shape; only recognized fields are
// rewritten.
func maskDebitRequest(data map[string]interface{}) map[string]interface{} {
	logged := make(map[string]interface{}, len(data))
	for k, v := range data {
		logged[k] = v
	}
	cardBlock, ok := logged["Card"].(map[string]interface{})
	if !ok {
		return logged
	}
	masked := make(map[string]interface{}, len(cardBlock))
	for k, v := range cardBlock {
		masked[k] = v
	}
	if number, ok := masked["Number"].(string); ok {
		masked["Number"] = card.MaskPAN(number)
	}
	if expiry, ok := masked["ExpiryDate"].(string); ok {
		masked["ExpiryDate"] = card.MaskExpiry(expiry)
	}
	logged["Card"] = masked
	return logged
}

func (g *Gateway) startingNumbersAllowed(data map[string]interface{}) bool {
	cardBlock, _ := data["Card"].(map[string]interface{})
	starting, _ := cardBlock["StartingNumbers"].(string)
	return card.AllowedPrefix(starting, g.cfg.AllowedPrefixes)
}
