// Package domain translates MCP tool calls into calculator gRPC requests.
//
// Each tool pairs a typed input with a typed result so the SDK can publish
// JSON schemas for both. Handlers forward a request id with every call and
// return the calculator's localized message when a call fails.
package domain
