package domain

import "sort"

// CheckResolved decides whether a filtered response resolved every requested
// site name. It fails when nothing came back or when the number of features
// differs from the number of names requested (duplicates included). The
// error carries the requested names that are absent from the response.
//
// The count comparison misses a response that swaps one requested name for
// another at the same count; callers relying on exact matching must compare
// names themselves.
func CheckResolved(requested []string, features []Feature) error {
	if len(requested) == 0 {
		return nil
	}
	if len(features) != 0 && len(features) == len(requested) {
		return nil
	}

	returned := make(map[string]struct{}, len(features))
	for _, f := range features {
		if name, ok := SiteName(f); ok {
			returned[name] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(requested))
	missing := make([]string, 0, len(requested))
	for _, name := range requested {
		if _, ok := returned[name]; ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		missing = append(missing, name)
	}
	sort.Strings(missing)

	return &UnresolvedSiteError{Names: missing}
}
