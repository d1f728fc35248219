// Package api exposes the reporting service over HTTP/JSON.
//
// Routes are mounted on a chi router by NewRouter. Every response is a JSON
// envelope: {"data": ...} on success, {"error": {"code", "message"}} on
// failure, where message is the operator-facing text from reporting.Message.
//
// Server runs the router with graceful shutdown; stop hooks run after the
// listener is closed, which is where the command saves settings.
package api
