// Package provider defines the upstream LLM provider contract. The only
// implementation lives in the openai subpackage.
package provider
