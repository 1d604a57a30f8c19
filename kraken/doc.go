// Package kraken is a client for the Kraken REST API.
//
// Public market data goes through PublicRequest, account endpoints through
// PrivateRequest, which adds a nonce and signs the request:
//
//	API-Sign = base64(HMAC-SHA512(base64decode(secret), path + SHA256(nonce + body)))
//
// where path is /0/private/<method> and body is the exact form encoded
// payload sent to the server.
//
//	c, err := kraken.New(kraken.Config{Key: key, Secret: secret})
//	balances, err := c.Balance(ctx)
//
// Errors match one of ErrConfiguration, ErrValidation, ErrTransport or
// ErrExchange with errors.Is. Exchange reported failures are *APIError.
package kraken
