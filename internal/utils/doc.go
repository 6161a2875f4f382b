// Package utils provides shared helpers for ghadmin commands.
//
// # Filesystem Utilities
//
//   - ReportFileName: builds the timestamped name of a report file
//   - CreateFile: creates an output file and its parent directories
//
// # Terminal Utilities
//
//   - IsTerminal: checks if stdin is a terminal
//   - ReadHidden: reads a value such as the API token without echoing it
package utils
