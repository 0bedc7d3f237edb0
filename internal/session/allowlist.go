package session

import "sort"

// BuildAllowList derives the navigable path prefixes under root from a
// permission snapshot. The root itself is always reachable. A módulo
// contributes its path only when its own value is positive, and only then do
// its sub-permisos contribute theirs: a positive sub-permiso under a denied
// módulo grants nothing (read-time AND-gate, distinct from the toggle-time
// cascade in the permission package).
//
// The result is deduplicated and deterministic: módulos in sorted key order,
// each followed by its sub paths in sorted key order.
func BuildAllowList(root string, permissions map[string]ModuleGrant) []string {
	allowed := []string{root}
	seen := map[string]bool{root: true}

	moduleKeys := make([]string, 0, len(permissions))
	for key := range permissions {
		moduleKeys = append(moduleKeys, key)
	}
	sort.Strings(moduleKeys)

	for _, key := range moduleKeys {
		mod := permissions[key]
		if mod.Value <= 0 {
			continue
		}

		endpoint := mod.Endpoint
		if endpoint == "" {
			endpoint = key
		}
		modPath := root + "/" + endpoint
		if !seen[modPath] {
			allowed = append(allowed, modPath)
			seen[modPath] = true
		}

		subKeys := make([]string, 0, len(mod.SubPermisos))
		for subKey := range mod.SubPermisos {
			subKeys = append(subKeys, subKey)
		}
		sort.Strings(subKeys)

		for _, subKey := range subKeys {
			sub := mod.SubPermisos[subKey]
			if sub.Value <= 0 {
				continue
			}
			subEndpoint := sub.Endpoint
			if subEndpoint == "" {
				subEndpoint = subKey
			}
			subPath := modPath + "/" + subEndpoint
			if !seen[subPath] {
				allowed = append(allowed, subPath)
				seen[subPath] = true
			}
		}
	}

	return allowed
}
