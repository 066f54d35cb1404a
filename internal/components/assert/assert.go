// Package assert panics on programmer errors, such as a constructor being handed
// a nil dependency. Anything a user can cause returns an error instead.
package assert

import "fmt"

// NotNil panics if value is nil, name is used in the panic message.
func NotNil(name string, value any) {
	if value == nil {
		panic(fmt.Sprintf("%s must not be nil", name))
	}
}
