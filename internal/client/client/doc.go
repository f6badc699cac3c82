// Package client talks to the calcapi HTTP API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login, Ping, Calculate, Root and History.
//  2. A concrete HTTP implementation (see HTTPClient) that keeps the current
//     access token, sends it as "Authorization: Bearer <token>" and maps
//     error responses to sentinel errors.
//
// # Error Handling
//
// ErrUnavailable and ErrUnauthorized can be matched with errors.Is. Any other
// non-2xx response is returned as *APIError carrying the server's message.
package client
