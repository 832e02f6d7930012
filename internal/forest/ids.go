package forest

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// randomNodeID returns n-<suffix> where suffix is ln chars of base32
// (lowercase, no padding). 8 chars ~= 40 bits of space, plenty for one forest.
func randomNodeID(ln int) (string, error) {
	nBytes := (ln*5 + 7) / 8
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b))[:ln]
	return "n-" + suffix, nil
}

// newNodeID returns a node id unique within this forest.
func (f *Forest) newNodeID() string {
	for _, ln := range []int{8, 10, 12} {
		for range 10 {
			id, err := randomNodeID(ln)
			if err != nil {
				break
			}
			if _, exists := f.byID[id]; !exists {
				return id
			}
		}
	}
	// Extremely unlikely fallback.
	for i := 0; ; i++ {
		id := fmt.Sprintf("n-%d", i)
		if _, exists := f.byID[id]; !exists {
			return id
		}
	}
}
