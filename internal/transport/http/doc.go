// Package http implements the HTTP handlers of the asset library. Handlers
// stay thin: they parse and validate the request, call a service and render
// the result as JSON. Every failure is rendered as an RFC 7807 problem
// document by the shared errors.ErrorHandler, using the mappings from
// ErrorMappings to turn domain errors into status codes.
//
// Each handler exposes Routes so the application can mount it under /api:
//
//	/api/health       HealthHandler
//	/api/library      LibraryHandler
//	/api/assets       AssetHandler
//	/api/kpis         KPIHandler
//	/api/layouts      LayoutHandler
//	/api/storyboards  StoryboardHandler
//	/api/previews     PreviewHandler
//	/api/logs         ClientLogHandler
package http
