// Package app wires the asset library service together and owns its
// lifecycle.
//
// New builds every component from a *config.Config in this order:
//
//  1. Logger, resolved paths and OpenTelemetry providers
//  2. The document store selected by storage.driver and the seeded catalog
//  3. The change feed hub, when websocket.enabled is set
//  4. KPI, layout, storyboard, asset and library services plus the preview manager
//  5. The chi router with middleware, the /api routes, /ws and /metrics
//
// Run serves until its context is cancelled and then shuts everything down
// in reverse order. The package never calls os.Exit.
package app
