package request

import "encoding/json"

// DepositRequest keeps the amount raw so both "600" and 600 are accepted
// and malformed input is reported as an invalid amount rather than a decode error.
type DepositRequest struct {
	Amount json.RawMessage `json:"amount"`
}
