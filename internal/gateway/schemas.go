package gateway

import "card-gateway/internal/schema"

// One immutable shape contract per transaction type, fixed at process start.
// Validation checks key congruence only; values are never inspected here.
var (
	addCardSchema = schema.Object{
		"CardAcceptor": schema.Object{"Id": schema.Scalar{}},
		"Card":         schema.Object{"StartingNumbers": schema.Scalar{}},
		"Profile": schema.Object{
			"Holder": schema.Group{Elem: schema.Object{
				"FirstName":  schema.Scalar{},
				"LastName":   schema.Scalar{},
				"Email":      schema.Scalar{},
				"CellNumber": schema.Scalar{},
			}},
			"ApplyFee": schema.Scalar{},
		},
	}

	loadCardSchema = schema.Object{
		"CardAcceptor": schema.Object{"Id": schema.Scalar{}},
		"Card":         schema.Object{"ReferenceID": schema.Scalar{}},
		"FundingCard":  schema.Object{"Number": schema.Scalar{}},
		"ApplyFee":     schema.Scalar{},
		"Amount":       schema.Scalar{},
	}

	checkBalanceSchema = schema.Object{
		"CardAcceptor": schema.Object{"Id": schema.Scalar{}},
		"Card":         schema.Object{"ReferenceID": schema.Scalar{}},
		"ApplyFee":     schema.Scalar{},
	}

	debitFundsSchema = schema.Object{
		"CardAcceptor": schema.Object{"Id": schema.Scalar{}},
		"Card": schema.Object{
			"Number":      schema.Scalar{},
			"ExpiryDate":  schema.Scalar{},
			"ReferenceID": schema.Scalar{},
		},
		"ApplyFee": schema.Scalar{},
		"Amount":   schema.Scalar{},
	}

	activateCardSchema = schema.Object{
		"CardAcceptor": schema.Object{"LocalDateTime": schema.Scalar{}},
		"Card":         schema.Object{"ReferenceID": schema.Scalar{}},
	}
)
