// Package authz holds the single authorization rule of the system:
// a resource may only be mutated or read privately by the account
// that owns it.
package authz

// Owns reports whether the caller is the owner of a resource.
func Owns(ownerID, callerID string) bool {
	return ownerID != "" && ownerID == callerID
}
