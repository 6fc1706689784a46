package ui

import "github.com/fatih/color"

// Palette holds the style of each message level.
type Palette struct {
	Info    *color.Color
	Success *color.Color
	Warn    *color.Color
	Error   *color.Color
}

// DefaultPalette emits ANSI escapes unconditionally. Terminals that do not
// render them show the raw sequences.
func DefaultPalette() Palette {
	return Palette{
		Info:    forced(color.FgBlue, color.Italic),
		Success: forced(color.FgGreen),
		Warn:    forced(color.FgYellow),
		Error:   forced(color.FgRed, color.Bold),
	}
}

// PlainPalette renders messages without any escape sequence.
func PlainPalette() Palette {
	return Palette{Info: plain(), Success: plain(), Warn: plain(), Error: plain()}
}

func forced(attributes ...color.Attribute) *color.Color {
	c := color.New(attributes...)
	c.EnableColor()
	return c
}

func plain() *color.Color {
	c := color.New()
	c.DisableColor()
	return c
}
