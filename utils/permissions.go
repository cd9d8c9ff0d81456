package utils

import "strings"

// MatchesPermission reports whether a user permission pattern grants a
// required permission. Patterns are resource:action; either part may be
// the wildcard *, and a bare "*" grants everything.
//
//	workorder:*  grants workorder:create
//	*:read       grants catalog:read
//	*:*          grants anything
func MatchesPermission(userPerm, requiredPerm string) bool {
	if userPerm == requiredPerm {
		return true
	}
	if userPerm == "*" || userPerm == "*:*" {
		return true
	}

	userParts := strings.Split(userPerm, ":")
	reqParts := strings.Split(requiredPerm, ":")
	if len(userParts) != len(reqParts) {
		return false
	}
	for i := range userParts {
		if userParts[i] != "*" && userParts[i] != reqParts[i] {
			return false
		}
	}
	return true
}

// HasPermission checks a required permission against a set of patterns.
func HasPermission(perms []string, required string) bool {
	for _, p := range perms {
		if MatchesPermission(p, required) {
			return true
		}
	}
	return false
}
