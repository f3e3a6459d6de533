// Package speaking calls the Meeting BaaS speaking-bot API directly over HTTP.
//
// Speaking bots are voice agents that join a meeting with one of the
// personas in the catalog returned by Personas. Unlike the main API, the
// API key is supplied per call, since the tools take it as an argument.
//
// When a call fails, CurlCommand reproduces the request as a shell command
// with the API key masked, and DescribeError renders the failure with the
// HTTP status and response details when they are available.
package speaking
