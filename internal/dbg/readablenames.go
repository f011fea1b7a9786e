package dbg

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts arbitrary comparable keys, such as mesh handles, into random
// readable names. It flagrantly leaks memory but generates the names lazily,
// so it's not a problem unless you're actually using it. Slot numbers get
// reused as the mesh changes, so a name is much easier to follow in a log than
// an index.

var memo map[interface{}]string

func init() {
	memo = make(map[interface{}]string)
	// Since the ids are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

// Anything with a Valid method that reports false is named "Ø".
type validator interface {
	Valid() bool
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	if v, ok := obj.(validator); ok && !v.Valid() {
		return "Ø"
	}

	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}
