// Package main runs the in-memory SMS gateway used by wtime during development
// and tests. It accepts alert messages, logs them and keeps them in memory
// instead of delivering them.
//
// HTTP API
//
//	POST /sms    {"to": [...], "body": "..."}
//	    Accept a message. 202 with {"id": ...}; 400 for an empty recipient
//	    list or body.
//
//	GET /sms
//	    Return every accepted message, oldest first.
//
//	GET /health
//	    200 "OK".
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Message bodies are redacted in the log.
//   - SIGINT or SIGTERM drains in-flight requests before exiting.
//   - The default listen address is 127.0.0.1:8080.
package main
