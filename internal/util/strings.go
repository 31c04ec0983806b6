package util

// TruncateRunes keeps the first max runes of s. A non-positive max keeps everything.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
