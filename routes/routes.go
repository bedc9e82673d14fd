package routes

// Routes package wires the HTTP surface of the Locality Resolver Service.
//
// Layout:
// - api.go: /v1 API, health probes, /metrics
// - web.go: /, /docs
// - middleware.go: request IDs and access logging
//
// Usage:
// routes.SetupAllRoutes(router, localityController)
