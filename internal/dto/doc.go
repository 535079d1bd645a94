// Package dto contains the request bodies accepted by the HTTP API.
//
// Only presence is validated: required fields on create, non-empty values
// for name and title when an update supplies them. Email format and
// username uniqueness are left to the caller.
//
//	var req dto.CreatePostRequest
//	if err := dto.ParseAndValidate(c, &req); err != nil {
//	    return err
//	}
package dto
