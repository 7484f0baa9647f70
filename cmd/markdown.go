package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// plain disables the terminal rendering, for pipes and tests.
var plain = os.Getenv(EnvPlain) != ""

// printMarkdown prints a markdown report on stdout, styled for the terminal.
func printMarkdown(md string) {
	if plain {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		log.Debug().Err(err).Msg("markdown renderer unavailable")
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("markdown rendering failed")
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
