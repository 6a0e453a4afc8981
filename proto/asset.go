package proto

import (
	"fmt"
	"strconv"
)

// HandleID identifies an asset handle independently of how it was obtained.
type HandleID uint64

// String implements fmt.Stringer.
func (id HandleID) String() string {
	return "HandleID(" + strconv.FormatUint(uint64(id), 10) + ")"
}

// Handle is a reference to an asset that may still be loading.
type Handle struct {
	// ID is the identifier of the handle.
	ID HandleID
	// Path is the asset path the handle was loaded from, if any.
	Path string
	// Type is the declared asset type name.
	Type string
}

// String implements fmt.Stringer.
func (h Handle) String() string {
	if h.Path != "" {
		return fmt.Sprintf("Handle<%s>(%d, %q)", h.Type, h.ID, h.Path)
	}

	return fmt.Sprintf("Handle<%s>(%d)", h.Type, h.ID)
}

type assetArm int

const (
	armPath assetArm = iota + 1
	armHandleID
)

// ProtoAsset is the Input-side replacement for an asset handle: either a
// path relative to the asset root or an existing handle identifier.
//
// The zero value holds neither arm and is rejected by compiled programs.
type ProtoAsset struct {
	arm  assetArm
	path string
	id   HandleID
}

// AssetPath returns a ProtoAsset holding the path arm.
func AssetPath(path string) ProtoAsset {
	return ProtoAsset{arm: armPath, path: path}
}

// AssetHandleID returns a ProtoAsset holding the identifier arm.
func AssetHandleID(id HandleID) ProtoAsset {
	return ProtoAsset{arm: armHandleID, id: id}
}

// DefaultHandleID returns a ProtoAsset pointing at the default handle.
// Useful as a default value for optional asset fields.
func DefaultHandleID() ProtoAsset {
	return AssetHandleID(0)
}

// FromHandle converts an existing handle into its identifier arm.
func FromHandle(h Handle) ProtoAsset {
	return AssetHandleID(h.ID)
}

// ToAssetPath returns the path held by the path arm, if any.
func (a ProtoAsset) ToAssetPath() (string, bool) {
	if a.arm != armPath {
		return "", false
	}

	return a.path, true
}

// ToHandleID returns the identifier held by the identifier arm, if any.
func (a ProtoAsset) ToHandleID() (HandleID, bool) {
	if a.arm != armHandleID {
		return 0, false
	}

	return a.id, true
}

// IsValid reports whether one of the two arms is set.
func (a ProtoAsset) IsValid() bool {
	return a.arm == armPath || a.arm == armHandleID
}

// String implements fmt.Stringer.
func (a ProtoAsset) String() string {
	switch a.arm {
	case armPath:
		return "AssetPath(" + strconv.Quote(a.path) + ")"
	case armHandleID:
		return a.id.String()
	default:
		return "ProtoAsset(invalid)"
	}
}
