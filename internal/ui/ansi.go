package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	failColor = color.New(color.FgRed, color.Bold)
	hintColor = color.New(color.Faint)

	symCross = "✖"
)

// Stderr is where status lines go; the CLI points it at its own stream.
var Stderr io.Writer = os.Stderr

// SetColor forces colour on or off regardless of the terminal.
func SetColor(enabled bool) { color.NoColor = !enabled }

func Fail(msg string) { failColor.Fprintln(Stderr, symCross+" "+msg) }
func Hint(msg string) { hintColor.Fprintln(Stderr, "Hint: "+msg) }
