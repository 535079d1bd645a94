// Package handler contains HTTP request handlers for postboard.
//
// Handlers parse path, query and body input, call the services and map
// errors to JSON responses.
//
// # Route Organization
//
//   - /users, /users/:id, /users/:id/posts, /users/availability
//   - /posts, /posts/:id, /posts/:id/author, /posts/search, /posts/stats
//   - /health, /healthz, /livez, /readyz, /version
//   - /openapi.yaml, /docs
//
// Static segments such as /posts/search are registered before /:id.
//
// # Error Handling
//
// Application errors below 500 are answered with their own status and
// message. Everything else is logged and answered with a generic 500.
package handler
