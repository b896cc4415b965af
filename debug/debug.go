// Package debug provides env-gated debug logging. Flags are read once
// at init: set FAUNA_DEBUG_DERIVE=1 to trace codec derivation,
// FAUNA_DEBUG_WIRE=1 to trace wire decoding.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Derive bool
	Wire   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Derive = boolEnv("FAUNA_DEBUG_DERIVE")
	d.Wire = boolEnv("FAUNA_DEBUG_WIRE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Derive() bool {
	return d.Derive
}
func Wire() bool {
	return d.Wire
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
}
