package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the FormFlow ASCII art banner with usage hints.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Teal-to-blue gradient, one color per row.
	s1 := termenv.String("  ______                   ______ _").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String(" |  ____|                 |  ____| |").Foreground(p.Color("#22d3ee"))
	s3 := termenv.String(" | |__ ___  _ __ _ __ ___ | |__  | | _____      __").Foreground(p.Color("#38bdf8"))
	s4 := termenv.String(" |  __/ _ \\| '__| '_ ` _ \\|  __| | |/ _ \\ \\ /\\ / /").Foreground(p.Color("#60a5fa"))
	s5 := termenv.String(" | | | (_) | |  | | | | | | |    | | (_) \\ V  V /").Foreground(p.Color("#818cf8"))
	s6 := termenv.String(" |_|  \\___/|_|  |_| |_| |_|_|    |_|\\___/ \\_/\\_/").Foreground(p.Color("#a78bfa"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()

	hint := termenv.String(fmt.Sprintf("  insurance form assistant %s", version)).Foreground(p.Color("#64748b"))
	cmds := termenv.String("  type 'status' for progress, 'menu' for options, 'quit' to exit").Foreground(p.Color("#64748b"))
	fmt.Println(hint)
	fmt.Println(cmds)
	fmt.Println()
}
