package pallets

import "strconv"

// indexedField names the Nth element of a repeated-field event payload
// (e.g. NewTerm's vector of members), which the event adapter surfaces as
// numbered fields rather than a slice type.
func indexedField(base string, i int) string {
	return base + "_" + strconv.Itoa(i)
}
