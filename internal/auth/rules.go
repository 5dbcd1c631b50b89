package auth

import "strings"

// RolePermissions is the default policy. Admin gets everything; students
// get the test-taking surface only.
var RolePermissions = map[string][]string{
	"student": {
		"bank:view",
		"session:create",
		"session:save",
		"session:submit",
		"session:view-own",
	},
	"admin": {
		"*",
	},
}

func hasPerm(role, perm string) bool {
	for _, p := range RolePermissions[role] {
		if matchPerm(p, perm) {
			return true
		}
	}
	return false
}

func matchPerm(pattern, perm string) bool {
	if pattern == "*" || pattern == perm {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(perm, strings.TrimSuffix(pattern, "*"))
	}
	return false
}
