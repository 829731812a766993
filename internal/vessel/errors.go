package vessel

import "errors"

var (
	ErrNoParts       = errors.New("vessel: no parts")
	ErrNoRoot        = errors.New("vessel: no root part")
	ErrMultipleRoots = errors.New("vessel: multiple root parts")
	ErrDuplicateID   = errors.New("vessel: duplicate part id")
	ErrMissingParent = errors.New("vessel: parent does not exist")
	ErrMissingNode   = errors.New("vessel: attachment node does not exist")
	ErrNotConnected  = errors.New("vessel: part not connected to root")
	ErrMissingSpec   = errors.New("vessel: part has no spec")
)
