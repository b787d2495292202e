// Package dbg has helpers that make mesh handles and values readable while
// debugging.
package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	petname "github.com/dustinkirkland/golang-petname"
)

// This converts arbitrary comparable values, such as typed handles, into
// random readable names. It flagrantly leaks memory but generates the names
// lazily, so it's not a problem unless you're actually using it. Typed handles
// of different kinds get different names even when their numbers match.

var (
	memoMu sync.Mutex
	memo   = make(map[interface{}]string)
)

func init() {
	// Since the ids are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return "Ø"
		}
	}
	if !v.Type().Comparable() {
		return fmt.Sprintf("%T", obj)
	}

	memoMu.Lock()
	defer memoMu.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}

// Dump renders values with their full structure.
func Dump(values ...interface{}) string {
	return spew.Sdump(values...)
}
