package client

import (
	"context"
	"time"
)

// Operation is one entry of the caller's history.
type Operation struct {
	ID        int64     `json:"id"`
	Operation string    `json:"operation"`
	Num1      float64   `json:"num1"`
	Num2      float64   `json:"num2"`
	Result    float64   `json:"result"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
}

// Result is the response to a single arithmetic call.
type Result struct {
	Result    float64 `json:"result"`
	Operation string  `json:"operation"`
	Num1      float64 `json:"num1"`
	Num2      float64 `json:"num2"`
}

type Client interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Ping(ctx context.Context) error
	Calculate(ctx context.Context, operation string, num1, num2 float64) (*Result, error)
	Root(ctx context.Context, number float64) (*Result, error)
	History(ctx context.Context) ([]Operation, error)
	SetAccessToken(token string)
}
