package util

import (
	"github.com/memmaker/sparks/engine/glhf"
)

type errorChecker interface {
	CheckError() error
}

// CheckForGLError logs pending GL errors if the backend can report them.
func CheckForGLError(b glhf.Backend, where string) bool {
	checker, ok := b.(errorChecker)
	if !ok {
		return false
	}
	if err := checker.CheckError(); err != nil {
		LogGlError(where + ": " + err.Error())
		return true
	}
	return false
}
