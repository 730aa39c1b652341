package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mgomes/mython/mython"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		// Plain pipeline mode: the program arrives on stdin.
		return runSource(os.Stdin, os.Stdout, mython.Config{})
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	checkOnly := fs.Bool("check", false, "only compile the program without executing")
	steps := fs.Int("steps", 0, "abort after this many evaluation steps (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input, err := readProgram(fs.Args())
	if err != nil {
		return err
	}

	engine := mython.NewEngine(mython.Config{StepQuota: *steps})
	script, err := engine.Compile(input)
	if err != nil {
		return err
	}
	if *checkOnly {
		return nil
	}
	return script.Run(context.Background(), os.Stdout)
}

func tokensCommand(args []string) error {
	input, err := readProgram(args)
	if err != nil {
		return err
	}
	lexer, err := mython.NewLexerString(input)
	if err != nil {
		return err
	}
	for _, tok := range lexer.Tokens() {
		fmt.Println(tok)
	}
	return nil
}

func runSource(in io.Reader, out io.Writer, cfg mython.Config) error {
	source, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}
	script, err := mython.NewEngine(cfg).Compile(string(source))
	if err != nil {
		return err
	}
	return script.Run(context.Background(), out)
}

// readProgram resolves the positional argument: a path, "-" for stdin, or
// nothing (also stdin).
func readProgram(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read program: %w", err)
		}
		return string(input), nil
	}
	input, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read program: %w", err)
	}
	return string(input), nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [run [flags] [file]|tokens [file]|repl]\n", prog)
	fmt.Fprintf(os.Stderr, "With no command, %s executes the program read from stdin.\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run     execute a program from a file, or stdin when the file is - or omitted")
	fmt.Fprintln(os.Stderr, "          -check  only compile the program without executing")
	fmt.Fprintln(os.Stderr, "          -steps  abort after this many evaluation steps (0 = unlimited)")
	fmt.Fprintln(os.Stderr, "  tokens  print the token stream, one token per line")
	fmt.Fprintln(os.Stderr, "  repl    start the interactive session")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
