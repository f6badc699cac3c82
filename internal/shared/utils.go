// Package shared provides secure memory wiping for sensitive input.
package shared

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Use it to clear passwords read from the terminal once they have been sent.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
