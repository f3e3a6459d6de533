// Package common provides shared utilities for MCP tool implementations.
//
// Builder accumulates tool definitions and produces an immutable Registry.
// Every tool added to a Builder gets its description linked to the API
// reference, its arguments validated against its declared input schema,
// and its invocations instrumented with metrics, tracing and audit logging.
//
// The argument and result helpers keep the tool packages uniform: handlers
// read arguments with StringArg and friends, and report outcomes with
// JSONResult, TextResultf and FailureResult.
package common
