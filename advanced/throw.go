package advanced

import "github.com/pkg/errors"

// Threading errors up and down the recursive flips, zips and segment traces
// would add a ton of complexity to the code. Instead, structural failures
// panic, and the public API recovers to convert to an error.

type TriangulateError error

// Panic with a TriangulateError.
func fatalf(format string, args ...interface{}) {
	panic(errors.Errorf(format, args...))
}

// Panic with err wrapped in context, keeping it matchable with errors.Is.
func fatalWrapf(err error, format string, args ...interface{}) {
	panic(errors.Wrapf(err, format, args...))
}

func HandleTriangulatePanicRecover(r interface{}) error {
	if r != nil {
		if triangulateError, ok := r.(TriangulateError); ok {
			return triangulateError
		}
		panic(r)
	}
	return nil
}
