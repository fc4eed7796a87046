package calc

import "strings"

// ParsePairs turns a list of name=value arguments into a parameter map.
// Duplicate names are rejected; schema checks happen at dispatch.
func ParsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, ParseErrorf("parameter %q is not in name=value form", pair)
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			return nil, ParseErrorf("parameter %q is not in name=value form", pair)
		}
		if _, dup := out[name]; dup {
			return nil, ParseErrorf("parameter %q given more than once", name)
		}
		out[name] = value
	}
	return out, nil
}

// ParseParams parses a single comma-separated parameter string, the format
// the interactive menu prompts for.
func ParseParams(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]string{}, nil
	}
	return ParsePairs(strings.Split(raw, ","))
}
