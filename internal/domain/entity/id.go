package entity

// IDLength is the length of a hex encoded document identifier.
const IDLength = 24

// IsValidID reports whether s is a well-formed identifier:
// exactly IDLength hexadecimal characters.
func IsValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
