// Package logger provides leveled console logging for ghadmin commands.
//
// Output is formatted with coloured prefixes from fatih/color. Colour is
// disabled automatically when NO_COLOR is set or the stream is not a
// terminal.
//
// # Verbosity Levels
//
//   - --verbose: Shows info messages
//   - --debug: Shows info and debug messages
//
// Warnings and errors are always shown on stderr.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Processing %d directives", count)
//
// Commands create a logger in their PersistentPreRun and pass it to
// workflows. Secret values must never be passed to any Logger method.
package logger
