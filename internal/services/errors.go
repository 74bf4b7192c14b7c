package services

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes; everything else is treated as a store/transport failure.
var (
	// ErrProfileNotFound means no profile matches the given identity key or username.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrEntityNotFound means a project or favorite app id matched no row.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrConflict means a persist hit a uniqueness constraint (e.g. username taken).
	ErrConflict = errors.New("conflict with existing record")

	// ErrProvisioningFailed means a first-login profile create did not complete.
	ErrProvisioningFailed = errors.New("profile provisioning failed")

	// ErrInvalidField means an update named a field that is not editable.
	ErrInvalidField = errors.New("field is not editable")
)

// isUniqueViolation reports whether err is a uniqueness-constraint violation.
// Relies on gorm's error translation being enabled on the connection.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
