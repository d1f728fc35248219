// Package requestid tags every HTTP request with an X-Request-ID.
//
// Middleware reuses a well-formed incoming header (letters, digits, '-' and
// '_', at most 128 bytes) or generates a UUIDv4, stores it in the request
// context and echoes it in the response. LoggerExtractor plugs the id into
// the logger's context extractors so every log line of a request carries it.
package requestid
