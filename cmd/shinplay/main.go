// Command shinplay is the engine's reference frontend: it opens a ROM
// archive or a loose asset directory, wires the asset/vm/command/layer/
// message/audio/render packages together, and runs a scenario in an
// Ebitengine window. It also exposes sdu's ROM inspection subcommands
// (list/extract/extract-one), since a working frontend needs them to
// pull assets out of a ROM in the first place.
//
// No CLI library appears anywhere in this module's dependency set (or the
// rest of the retrieved examples), so subcommand dispatch below is plain
// stdlib flag, one FlagSet per subcommand.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(os.Args[2:])
	case "extract":
		err = runExtract(os.Args[2:])
	case "extract-one":
		err = runExtractOne(os.Args[2:])
	case "play":
		err = runPlay(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "shinplay: unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "shinplay: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shinplay <command> [arguments]

commands:
  list <rom>                                 list every entry in a ROM archive
  extract <rom> <output-dir> [names...]      extract files from a ROM archive
  extract-one <rom> <name> <output-file>     extract a single file from a ROM archive
  play <root> <scenario>                     run a scenario from a ROM or a loose asset directory`)
}
