package clause

import (
	"fmt"
	"runtime"
)

// Site is the program counter of a contract declaration.
//
// Sites are captured eagerly (one runtime.Callers call) but resolved to a
// file and line lazily, only when a violation is reported. Resolution walks
// the symbol table and is far more expensive than the capture.
type Site uintptr

// Here returns the site of the caller's caller.
//
// skip adds further frames to skip, so a helper that wraps Here passes 1.
func Here(skip int) Site {
	var pcs [1]uintptr
	// Skip runtime.Callers, Here and the function that called Here.
	if runtime.Callers(skip+3, pcs[:]) == 0 {
		return 0
	}
	return Site(pcs[0])
}

// Location is a resolved declaration site.
type Location struct {
	Function string
	File     string
	Line     int
}

// Location resolves the site. The zero Site resolves to the zero Location.
func (s Site) Location() Location {
	if s == 0 {
		return Location{}
	}
	frames := runtime.CallersFrames([]uintptr{uintptr(s)})
	frame, _ := frames.Next()
	return Location{
		Function: frame.Function,
		File:     frame.File,
		Line:     frame.Line,
	}
}

// Known reports whether the location was resolved.
func (l Location) Known() bool {
	return l.File != ""
}

// String formats the location as file:line.
func (l Location) String() string {
	if !l.Known() {
		return "unknown location"
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}
