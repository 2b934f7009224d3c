// ABOUTME: Package doc for the gateway HTTP client package
// ABOUTME: Documents the API surface and error normalization contract

// Package gateway is the HTTP client for the chatbot backend API.
//
// Every backend operation is exposed as one method on Client. All methods
// take a context, attach the bearer credential from the injected session,
// and return either the parsed payload or a *gateway.Error. Network
// failures, non-2xx statuses, and malformed payloads are all funneled
// through that single error shape so callers never branch on transport
// detail.
//
// Endpoints consumed:
//
//   - GET    /api/organizations
//   - GET    /api/users/names?organization=
//   - GET    /api/admin/users?organization=
//   - POST   /api/admin/create-user
//   - DELETE /api/admin/delete-user/{name}?organization=
//   - DELETE /api/admin/delete-all-users?organization=
//   - PUT    /api/admin/modify-user-embeddings/{name}
//   - POST   /api/chat/{name}
//   - GET    /api/admin/static-questions/{username}
//   - GET    /api/embedding-stats
package gateway
