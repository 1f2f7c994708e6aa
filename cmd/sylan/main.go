package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/sylan-lang/sylan/pkg/lexer"
)

func main() {
	log := hclog.Default()
	if len(os.Args) <= 1 {
		usage()
		return
	}
	args := os.Args[1:]
	switch args[0] {
	case "lex":
		if len(args) < 2 {
			exitError("No file specified")
		}
		start := time.Now()
		if err := doLex(log, args[1]); err != nil {
			exitError("Failed to lex file: %v", err)
		}
		log.Info("Lexed file", "file", args[1], "duration", time.Since(start).String())
	case "help":
		usage()
	default:
		exitError("Unrecognized command: '%s'", args[0])
	}
}

func doLex(log hclog.Logger, file string) error {
	text, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	log.Debug("Starting lexer", "file", file, "bytes", len(text))
	tokens := lexer.TokensFromString(string(text))
	for {
		tok, ok := tokens.Read()
		if !ok {
			break
		}
		fmt.Printf("%4d:%-4d %-20s %q\n", tok.Position.Line, tok.Position.Column, tok.Token.Kind, tok.Token.String())
		if tok.Token.Kind == lexer.Eof {
			break
		}
	}
	return tokens.Join()
}

func exitError(format string, args ...any) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	fmt.Printf("Error: "+format, args...)
	usage()
	os.Exit(-1)
}

func usage() {
	text := `
sylan is the front end driver for the Sylan language toolchain.

  sylan help
  sylan lex FILE

The 'help' subcommand will print this usage information.
The 'lex' subcommand will tokenize FILE and print one line per token with its source position. Any scanning error is reported after the partial stream.
`
	fmt.Println(text)
}
