package ptrx

// String returns a pointer to the given string.
func String(s string) *string { return &s }
