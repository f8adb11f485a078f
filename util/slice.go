package util

// Diff returns the elements of in whose key is not present in exclude.
func Diff[T any](in []T, exclude map[string]bool, key func(T) string) []T {
	var out []T
	for _, v := range in {
		if !exclude[key(v)] {
			out = append(out, v)
		}
	}
	return out
}

func Contains(in []string, value string) bool {
	for _, v := range in {
		if v == value {
			return true
		}
	}
	return false
}
