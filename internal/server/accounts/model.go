// Package accounts implements the account-management model: registration,
// credential authentication, token issuance/verification and account closing,
// each executed as one storage transaction.
package accounts

// Status is the lifecycle state of an account. The only transition is
// OPEN -> CLOSED, and it is one-way.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// Account is the persisted record. AccountID is assigned by storage on
// creation and is the identity tokens embed; LoginID is unique across all
// accounts regardless of status. PasswordHash is never exposed outward.
type Account struct {
	AccountID    int64
	LoginID      string
	PasswordHash string
	DisplayName  string
	Status       Status
}

// CreateParams are the signup inputs, validated as a unit before any
// persistence happens.
type CreateParams struct {
	LoginID     string
	Password    string
	DisplayName string
}
