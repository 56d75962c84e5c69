// Package ai holds the failure taxonomy shared by every provider invoker.
// The cascade and the HTTP handlers match these with errors.Is, so each
// invoker must wrap its failures around exactly one of them.
package ai

import "errors"

var (
	// CredentialError marks a provider whose required key is absent.
	// The cascade skips such providers without invoking them.
	CredentialError = errors.New("provider credential missing")

	// PromptError marks a content-policy rejection. Retrying the same
	// prompt against another provider will not fix it, so the cascade
	// stops instead of advancing.
	PromptError = errors.New("prompt rejected by content policy")

	// StatusCodeError marks a non-2xx upstream status.
	StatusCodeError = errors.New("unexpected upstream status code")

	// SchemaError marks an upstream body that parsed but was missing
	// required fields.
	SchemaError = errors.New("upstream response missing required fields")

	// NoImageError marks a 2xx upstream response from which no image
	// could be extracted.
	NoImageError = errors.New("no image in upstream response")

	// ExhaustedError marks a cascade that ran out of credentialed
	// providers without a success.
	ExhaustedError = errors.New("all providers exhausted")

	// NoProviderError marks a chain with no eligible provider at all:
	// a configuration problem, distinct from providers being down.
	NoProviderError = errors.New("no provider available")
)
