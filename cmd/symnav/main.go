package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/0muji4/symbolnav/internal/app"
	"github.com/0muji4/symbolnav/internal/command"
	"github.com/0muji4/symbolnav/internal/config"
	"github.com/0muji4/symbolnav/internal/editor"
	"github.com/0muji4/symbolnav/internal/host"
	"github.com/0muji4/symbolnav/internal/outline"
	"github.com/0muji4/symbolnav/internal/workspace"
)

// Command line flags
var (
	flagConfig  = flag.String("config", os.Getenv("SYMNAV_CONFIG"), "Path to the YAML config file")
	flagRoot    = flag.String("root", ".", "Project root passed to the language server")
	flagVerbose = flag.Bool("verbose", false, "Log resolver activity to stderr")
)

func usage() {
	fmt.Fprintf(os.Stderr, `symnav - act on the symbol enclosing the cursor

Usage: symnav [options] <action> <file>:<line>[:<col>]

Lines and columns are zero-based.

Actions:
  run-test            Run the nearest test function or method
  run-test-new        Same, in a fresh terminal
  copy-test-command   Copy the command that runs the nearest test
  copy-function       Copy the source of the enclosing function or method
  copy-class          Copy the source of the enclosing class
  show-signature      Show the signature of the enclosing function, method or class
  debug-symbols       Print the symbol outline, marking symbols that contain the cursor

Options:
`)
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	action, err := command.ParseAction(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	path, pos, err := editor.ParseLocation(flag.Arg(1))
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatal(err)
	}

	level := slog.LevelWarn
	if *flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	a, err := app.New(cfg, *flagRoot, app.IO{
		Terminal: os.Stdout,
		Scratch:  os.Stdout,
		Notify:   os.Stderr,
	}, logger)
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(run(a, action, path, pos))
}

// openEditor returns nil when the file cannot be read, which the
// dispatcher reports as no active editor.
func openEditor(path string, pos outline.Position) editor.Context {
	reader, err := workspace.NewFSReader(filepath.Dir(path))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil
	}
	doc, err := editor.Open(reader, path, pos)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil
	}
	return doc
}

func run(a *app.App, action command.Action, path string, pos outline.Position) int {
	code := 0

	res, err := a.Dispatcher.Run(action, openEditor(path, pos))
	if err != nil {
		code = 1
	} else if _, ok := a.Clipboard.(*host.MemoryClipboard); ok {
		// With the system clipboard disabled, copies go to stdout instead.
		switch action {
		case command.CopyTestCommand, command.CopyFunction, command.CopyClass:
			fmt.Println(res.Output)
		}
	}

	// ターミナルのコマンドが終わるまで待ち、テストの終了コードを引き継ぎます
	if err := a.Close(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return code
}
