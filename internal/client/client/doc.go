// Package client is the terminal client's facade over the auth server.
//
// HTTPClient implements Client with Register, Login and Logout. Failures come
// back as one of two types:
//
//   - *TransportError: the server could not be reached (Status 0) or answered
//     with a body that is not JSON. errors.Is(err, ErrUnavailable) holds for
//     the first case.
//   - *ApplicationError: the server answered with a JSON error body. Message is
//     the server's "error" or "message" field, or an operation default.
//     errors.Is(err, ErrUnauthorized) holds for 401 answers.
//
// Logout is local only; the server keeps no session.
package client
