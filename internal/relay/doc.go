// Package relay talks to an SMS gateway over HTTP and provides the small
// development gateway that cmd/smsrelay serves.
//
// HTTP API
//
//	POST /sms    {"to": ["+15550001", ...], "body": "..."}
//	    Queue one message for every recipient. 202 on success, 400 for an
//	    empty recipient list or body.
//
//	GET /health
//	    200 "OK" when the gateway accepts messages.
//
//	GET /sms
//	    Development only: list the messages accepted so far.
//
// All requests accept a context for cancellation and deadlines. Non-2xx
// statuses are returned as errors carrying the method, path and status text.
package relay
