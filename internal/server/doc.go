// Package server provides the shared server context and the HTTP surfaces
// of the meeting-mcp server.
//
// # Key Components
//
// ServerContext resolves the Meeting BaaS API key of each request and hands
// out API clients, cached per key. On the HTTP transports a caller can send
// its own key in the x-meeting-baas-api-key header; otherwise the key from
// MEETING_BAAS_API_KEY is used.
//
// HTTPServer exposes the MCP server over streamable HTTP (/mcp) or SSE
// (/sse and /message), together with the health endpoints of HealthChecker.
//
// MetricsServer serves Prometheus metrics on a dedicated port.
//
// When REDIS_URL is set, the readiness check also pings Redis/Valkey.
package server
