package document

import "strconv"

// RootLabel is how the empty root path is rendered in diagnostics.
const RootLabel = "$"

// Child joins an object key onto a diagnostic path.
func Child(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Index joins an array index onto a diagnostic path.
func Index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// Label renders a path for use in diagnostics.
func Label(path string) string {
	if path == "" {
		return RootLabel
	}
	return path
}
