package evmi

import "github.com/ethereum/go-ethereum/log"

// discardLogger is used whenever Evaluate is called without an
// EvalOption supplying one, so interpreter.fail never needs a nil check
// beyond its one guard. log.Root() would work too but would entangle
// every Evaluate call with whatever the host process configured as its
// global logger; a package-local discard keeps this core silent by
// default, since it is meant to be embedded as a library rather than run
// as a standalone program.
var discardLogger = log.New()

func init() {
	discardLogger.SetHandler(log.DiscardHandler())
}
