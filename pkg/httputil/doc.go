// Package httputil provides the JSON plumbing shared by boxfit's HTTP API.
//
// # Responses
//
// [WriteJSON] encodes a value with a status code. [WriteError] renders any
// error as
//
//	{"code": "INVALID_DIMENSION", "message": "width must be ..."}
//
// choosing the status from the error code with [StatusFor]: INVALID_* codes
// map to 400, NOT_FOUND and FILE_NOT_FOUND to 404, UNSUPPORTED to 501 and
// everything else to 500.
//
// # Requests
//
// [DecodeJSON] reads a bounded request body and rejects unknown fields.
//
// # Middleware
//
// [Observe] reports every request to the registered observability.HTTPHooks
// and logs it at debug level.
//
// # Retry
//
// [Retry] runs an operation with exponential backoff. Only errors wrapped in
// [RetryableError] are retried.
package httputil
