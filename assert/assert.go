package assert

import "github.com/KweezyCode/NoCheatPlus/oerror"

// IsTrue panics with a formatted error if ok is false. It is only used for programming errors.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
