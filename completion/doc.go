// Package completion talks to an OpenAI-compatible chat completion API.
//
// Client forwards a single user message and returns the upstream JSON body
// untouched. Mock answers locally with a body of the same shape, echoing the
// input, so the frontend can be exercised without an API key being charged.
//
// A non-success upstream status is reported as *UpstreamError carrying the
// status code and the upstream's error message (or "Unknown error").
package completion
