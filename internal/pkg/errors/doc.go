// Package errors provides application error types for postboard.
//
// This package defines:
//   - AppError type with error classification
//   - Error constructors for common error types
//   - Error type checking helpers
//   - HTTP status code mapping
//
// # Error Types
//
//   - NotFound: No record exists for the given id (404)
//   - Validation: Invalid input data (400)
//   - BadRequest: Malformed request (400)
//   - Internal: Unexpected server error (500)
//
// NotFound is the only error the stores produce. Everything else is raised at
// the HTTP boundary.
//
// # Usage
//
//	return apperrors.RecordNotFound(apperrors.KindUser, id)
//
//	if kind, id, ok := apperrors.MissingRecord(err); ok {
//	    // kind is "user" or "post"
//	}
//
// Errors survive wrapping with fmt.Errorf and %w.
package errors
