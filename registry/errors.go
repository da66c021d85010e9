package registry

import "errors"

// Error kinds reported by registry operations. Operations wrap them with
// context ("%w: ..."), so callers match with errors.Is and clients see the
// kind name at the start of the message.
var (
	ErrAlreadyInitialized = errors.New("AlreadyInitialized")
	ErrNotAuthorized      = errors.New("NotAuthorized")
	ErrOrgNotRegistered   = errors.New("OrgNotRegistered")
	ErrNotAnOEM           = errors.New("NotAnOEM")
	ErrPartAlreadyExists  = errors.New("PartAlreadyExists")
	ErrPartNotFound       = errors.New("PartNotFound")
	ErrInvalidInput       = errors.New("InvalidInput")
)

var errorKinds = []error{
	ErrAlreadyInitialized,
	ErrNotAuthorized,
	ErrOrgNotRegistered,
	ErrNotAnOEM,
	ErrPartAlreadyExists,
	ErrPartNotFound,
	ErrInvalidInput,
}

// Kind returns the name of the error kind carried by err, or "" for
// infrastructure failures and nil.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ""
}
