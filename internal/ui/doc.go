// Package ui provides semantic text formatting for CLI output.
//
// Formatters colourise content when the terminal supports it. When
// NO_COLOR is set or the terminal doesn't support colours, text-based
// decorations are used instead:
//
//	ui.Code.Sprint("ghadmin secrets create")  // `backticks`
//	ui.Highlight.Sprint("MY_SECRET")           // 'single quotes'
//	ui.Muted.Sprint("HTTP 204")                // (parentheses)
//	ui.Check() + " done"                       // ✓ done
package ui
