package kvtodo

import "strings"

// maxKeyLength bounds keys so they fit in a file name on every filesystem we target.
const maxKeyLength = 255

// IsValidKey validates that a string can be used as a store key.
// It checks that the key:
//   - is between 1 and 255 bytes long
//   - does not start with "." (rules out ".", ".." and hidden temp files)
//   - only contains ASCII letters, digits, "_", "=", "." and "-"
//
// The character set is the intersection of what NATS KV, the filesystem
// store and the SQL stores accept. Generated UUIDs always pass.
func IsValidKey(key string) bool {
	if key == "" || len(key) > maxKeyLength {
		return false
	}

	if strings.HasPrefix(key, ".") {
		return false
	}

	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '=' || c == '.' || c == '-':
		default:
			return false
		}
	}

	return true
}

// CleanTitle strips artifacts left around a title by a naive
// stringify round trip. It removes at most one leading and one trailing
// backslash, then at most one leading and one trailing double quote.
//
// It is not a JSON unescaper: interior escapes, unicode escapes and
// multiple layers of quoting are left as they are.
func CleanTitle(s string) string {
	s = strings.TrimPrefix(s, `\`)
	s = strings.TrimSuffix(s, `\`)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}
