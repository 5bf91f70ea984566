package jit

// callEntry calls the generated function at fn (a raw code address) with
// base, length, and rtsPtr as its three arguments, returning its status
// word. Implemented in call_amd64.s.
func callEntry(fn, base, length, rtsPtr uintptr) uint64
