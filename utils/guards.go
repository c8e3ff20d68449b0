package utils

import (
	"errors"

	"gorm.io/gorm"
)

// EnsureFound converts a not-found lookup result into a typed 404 carrying
// the resource name and identifier. Any other lookup error passes through
// untouched; nil means the record exists.
func EnsureFound(err error, resource, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(resource, id)
	}
	return err
}

// EnsureOwnership fails with a typed 403 unless the authenticated principal
// is the record's owner. Callers must run EnsureFound first: ownership of a
// record that does not exist is reported as 404, never 403.
func EnsureOwnership(principalID, ownerID uint, resource string) error {
	if principalID != ownerID {
		return NewForbiddenError(resource)
	}
	return nil
}
