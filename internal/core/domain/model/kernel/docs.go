// Package kernel provides core domain primitives shared across the delivery
// orchestration model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a value object for geographic coordinates with great-circle
//     distance calculation
//   - SpeedProfile: travel-time estimation parameters supplied by configuration
//
// These primitives enforce domain invariants and validation rules. They are
// immutable and thread-safe, suitable for concurrent use.
package kernel
