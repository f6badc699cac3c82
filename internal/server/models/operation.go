package models

import "time"

// Operation names persisted to history.
const (
	OperationAdd      = "add"
	OperationSubtract = "subtract"
	OperationMultiply = "multiply"
	OperationRoot     = "root"
)

// Operation is one arithmetic call recorded in a user's history.
type Operation struct {
	ID        int64     `json:"id"`
	Operation string    `json:"operation"`
	Num1      float64   `json:"num1"`
	Num2      float64   `json:"num2"`
	Result    float64   `json:"result"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
}
