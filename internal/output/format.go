package output

import "github.com/crimson-sun/wmsprobe/internal/model"

// Format returns the bytes an output should write for a.
// Text artifacts end with exactly one newline; image bytes are untouched.
func Format(a model.Artifact) []byte {
	if !a.IsText() {
		return a.Body
	}
	n := len(a.Body)
	for n > 0 && a.Body[n-1] == '\n' {
		n--
	}
	out := make([]byte, n+1)
	copy(out, a.Body[:n])
	out[n] = '\n'
	return out
}
