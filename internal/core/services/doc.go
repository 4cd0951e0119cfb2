// Package services implements the driving port interfaces.
// Services contain the core business logic: strategy selection,
// chunk finalization, and the file ingestion pipeline. They
// orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO or external dependencies.
package services
