// Package handlers implements the HTTP API layer for the taskrunner.
//
// Handlers validate requests, call the services layer and map results and
// errors to HTTP responses.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request validation                                           │
//	│  - Parameter parsing                                            │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  Dispatcher │ DispatchService                                   │
//	└─────────────────────────────────────────────────────────────────┘
//
// The Handler implements v1.ServerInterface and is mounted with:
//
//	v1.RegisterHandlers(router, handler)
//
// # API Endpoints
//
//	┌────────┬──────────────────┬─────────────────────────────────────────┐
//	│ Method │ Endpoint         │ Description                             │
//	├────────┼──────────────────┼─────────────────────────────────────────┤
//	│ POST   │ /queue/items     │ Send each item to the target            │
//	│ POST   │ /cargo/items     │ Send items to the target in sub-batches │
//	│ GET    │ /dispatches      │ List journal entries                    │
//	│ GET    │ /dispatches/{id} │ Get one journal entry                   │
//	│ GET    │ /stats           │ Runner state and journal summary        │
//	└────────┴──────────────────┴─────────────────────────────────────────┘
//
// # Push Handlers
//
// Request:
//
//	{ "items": [ {...}, {...} ] }
//
// Response, results aligned with items:
//
//	{ "results": [ ..., ... ] }
//
// The request returns once every item settled. Errors:
//   - 400 Bad Request: body is not JSON or items is empty
//   - 502 Bad Gateway: the target failed for at least one item
//   - 503 Service Unavailable: the runner is closed
//   - 504 Gateway Timeout: the client went away before the results were ready
//
// # Dispatches Handler
//
// Query Parameters:
//
//	┌──────────┬──────────┬───────────────────────────────────────────────┐
//	│ Parameter│ Type     │ Description                                   │
//	├──────────┼──────────┼───────────────────────────────────────────────┤
//	│ mode     │ []string │ queue, cargo                                  │
//	│ status   │ []string │ succeeded, failed                             │
//	│ sort     │ []string │ field:asc|desc (mode, size, status,           │
//	│          │          │ startedAt, duration)                          │
//	│ page     │ int      │ Page number (default: 1)                      │
//	│ pageSize │ int      │ Items per page (default: 20, max: 100)        │
//	└──────────┴──────────┴───────────────────────────────────────────────┘
package handlers
