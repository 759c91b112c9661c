// Package store provides abstractions for data persistence. Interfaces
// here are implemented by the platform-specific stores (currently
// PostgreSQL in internal/platform/postgres) and consumed by the service
// layer; the simulation engine itself never touches persistence.
package store
