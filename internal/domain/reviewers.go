package domain

import "strings"

// ReviewerSelection is the outcome of resolving typed reviewer names.
type ReviewerSelection struct {
	Handles     []string
	Blacklisted []string
}

// ResolveReviewers splits a comma or space separated list of names and maps
// each one through aliases. An alias mapped to an empty handle is blacklisted
// and dropped. Names without an alias are used as GitHub handles directly.
// Duplicates are removed and the first occurrence order is kept.
func ResolveReviewers(input string, aliases map[string]string) ReviewerSelection {
	var selection ReviewerSelection
	seen := make(map[string]bool)
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, name := range fields {
		name = strings.TrimPrefix(name, "@")
		if name == "" {
			continue
		}
		handle := name
		if aliased, ok := lookupAlias(aliases, name); ok {
			if aliased == "" {
				selection.Blacklisted = append(selection.Blacklisted, name)
				continue
			}
			handle = aliased
		}
		key := strings.ToLower(handle)
		if seen[key] {
			continue
		}
		seen[key] = true
		selection.Handles = append(selection.Handles, handle)
	}
	return selection
}

// lookupAlias matches case-insensitively since viper lowercases map keys.
func lookupAlias(aliases map[string]string, name string) (string, bool) {
	if handle, ok := aliases[name]; ok {
		return strings.TrimSpace(handle), true
	}
	for alias, handle := range aliases {
		if strings.EqualFold(alias, name) {
			return strings.TrimSpace(handle), true
		}
	}
	return "", false
}
