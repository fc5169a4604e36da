package docview

import "strings"

// opaqueSchemes never use "//" after the colon, so "scheme:rest" is a
// complete link rather than a malformed concatenation.
var opaqueSchemes = map[string]bool{
	"mailto":     true,
	"tel":        true,
	"sms":        true,
	"data":       true,
	"javascript": true,
	"urn":        true,
	"news":       true,
}

// NormalizeLink rewrites a hyperlink target so that it carries a
// well-formed absolute scheme. The rules are a permissive heuristic over
// author input, not a URL parser:
//
//   - empty and fragment-only targets ("#top") are left unchanged;
//   - targets with a well-formed "scheme://" are left unchanged;
//   - "scheme:rest" where rest does not start with "//" has the scheme and
//     colon stripped (e.g. "http:example.com/x"), unless the scheme is
//     opaque (mailto, tel, ...) or rest starts with a digit (host:port);
//   - "//host" gets "http:" prefixed, and anything else not starting with
//     http:// or https:// gets "http://" prefixed.
//
// NormalizeLink is idempotent.
func NormalizeLink(href string) string {
	v := strings.TrimSpace(href)
	if v == "" || strings.HasPrefix(v, "#") {
		return v
	}

	if scheme, rest, ok := splitScheme(v); ok {
		switch {
		case strings.HasPrefix(rest, "//"):
			return v
		case opaqueSchemes[strings.ToLower(scheme)]:
			return v
		case rest != "" && rest[0] >= '0' && rest[0] <= '9':
			// host:port, not a scheme
		default:
			v = strings.TrimPrefix(rest, "/")
		}
	}

	if strings.HasPrefix(v, "//") {
		return "http:" + v
	}
	if !hasHTTPScheme(v) {
		return "http://" + v
	}
	return v
}

// splitScheme splits v into a scheme token and the text after its colon.
// A scheme token is a letter followed by letters, digits, '+', '-' or '.'.
func splitScheme(v string) (scheme, rest string, ok bool) {
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		case i > 0 && c == ':':
			return v[:i], v[i+1:], true
		default:
			return "", "", false
		}
	}
	return "", "", false
}

func hasHTTPScheme(v string) bool {
	lower := strings.ToLower(v)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
