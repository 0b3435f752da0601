package visits

import "errors"

// ErrInvalidKey is reserved for page ID validation. Every string is currently
// accepted as a page ID, so no operation returns it yet.
var ErrInvalidKey = errors.New("visits: invalid page id")
