package theme

import (
	"fmt"
)

// Banner returns the CLI banner.
func Banner() string {
	const cyan = "\033[36m"
	const yellow = "\033[33m"
	const reset = "\033[0m"

	art := "" +
		cyan + "  ┌─┐ botlens ┌─┐\n" + reset +
		yellow + "  ──────────────────────────────\n" + reset +
		"  bot-detection dataset feature pipeline\n"
	return art
}

// PrintBanner prints the banner to stdout.
func PrintBanner() {
	fmt.Print(Banner())
}
