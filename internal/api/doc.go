// Package api provides the HTTP REST API and WebSocket server for the
// client portal.
//
// It exposes authentication (password + MFA challenge), tenant-scoped
// access logs, camera inventory, environmental and power telemetry,
// facility announcements, and a dashboard summary. A WebSocket hub
// pushes environmental status rollups and new announcements to
// subscribed clients.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Every response uses a common envelope; see response.go.
package api
