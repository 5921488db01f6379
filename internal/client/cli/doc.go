// Package cli provides the interactive terminal client for the auth server.
//
// It wires configuration, the HTTP client facade and the authentication
// service into a REPL with register, login, dashboard and logout commands.
// Passwords are read without echo when stdin is a terminal. Registration
// rejects passwords shorter than 6 characters before contacting the server.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
