// Package cli provides the calcapi command-line client.
//
// It wires configuration and the HTTP API client into a cobra command tree:
//
//	calc register [--username u] [--email e]
//	calc login [--username u]
//	calc add|subtract|multiply <num1> <num2>
//	calc root <number>
//	calc history [--json]
//	calc ping
//
// Passwords are always read from the terminal without echo. Protected
// commands send the token given by --token or CALC_TOKEN.
package cli
