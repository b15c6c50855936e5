package random

import "math/rand"

// Order numbers use an unambiguous upper-case alphabet.
const charset = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

func String(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
