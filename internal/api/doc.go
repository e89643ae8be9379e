// Package api handles incoming HTTP requests, routing, request
// validation, and response formatting. It adapts HTTP concerns to the
// service layer, which returns uniform envelopes; handlers pick the
// status code and write the envelope as the response body.
package api
