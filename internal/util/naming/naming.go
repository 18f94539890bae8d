// Package naming provides consistent naming for provisioned resources.
//
// Instance names follow the pattern {prefix}-{index} with a 1-based slot
// index, so a run with prefix "bm" and count 3 yields bm-1, bm-2, bm-3.
package naming

import "fmt"

// Instance returns the name of the instance occupying the given slot.
func Instance(prefix string, index int) string {
	return fmt.Sprintf("%s-%d", prefix, index)
}
