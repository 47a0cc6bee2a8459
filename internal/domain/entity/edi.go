package entity

import "time"

// EDI transaction constants
const (
	EDITransactionType278  = "278"
	EDITransactionIDPrefix = "AUTH-"
)

// EDIRecord is the audit row written for every generated EDI document
type EDIRecord struct {
	ID              int64     `json:"id"`
	TransactionID   string    `json:"transactionId"`
	TransactionType string    `json:"transactionType"`
	DocumentContent string    `json:"documentContent"`
	ReceiverID      string    `json:"receiverId"`
	FileName        string    `json:"fileName"`
	StatusSuffix    string    `json:"statusSuffix"`
	CreatedAt       time.Time `json:"createdAt"`
}
