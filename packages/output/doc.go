// Package output renders the interactive push flow.
//
// Console prints the push header, a preview table with redacted values, the
// confirmation prompt and a progress spinner fed by sync events. Colours
// come from fatih/color, tables and spinners from pterm. The spinner only
// animates when the writer is a terminal.
package output
