package query

import "slices"

func sorted(values []string) []string {
	if slices.IsSorted(values) {
		return values
	}
	c := slices.Clone(values)
	slices.Sort(c)
	return c
}
