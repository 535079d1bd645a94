// Package validator wraps go-playground/validator for request DTOs.
//
// Field errors are reported under the JSON names of the request body,
// so a missing userId is reported as "userId", not "UserID":
//
//	if err := validator.Validate(req); err != nil {
//	    // err is a validator.ValidationErrors
//	}
//
// The validator instance is package-level and safe for concurrent use.
package validator
