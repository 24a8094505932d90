package milp

import "strings"

var nameReplacer = strings.NewReplacer(
	"-", "_",
	"+", "_",
	"[", "_",
	"]", "_",
	" ", "_",
	">", "_",
	"/", "_",
)

// Name joins parts with underscores and replaces characters that LP and MPS
// files cannot carry in identifiers.
func Name(parts ...string) string {
	return nameReplacer.Replace(strings.Join(parts, "_"))
}
