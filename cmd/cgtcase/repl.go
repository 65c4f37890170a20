// repl.go - Interactive session
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/lgbarn/cgtcase/internal/config"
	"github.com/lgbarn/cgtcase/internal/output"
	"github.com/lgbarn/cgtcase/internal/parser"
	"github.com/lgbarn/cgtcase/internal/registry"
)

const (
	historyFile = ".cgtcase_history"
	promptMain  = "cgt> "
)

const replHelp = `Enter test file text, e.g. [nim] (1 2) {B win, W}
Commands:
  :families  list the game families
  :help      show this help
  :quit      leave the session`

// errQuit ends the session.
var errQuit = errors.New("quit")

// runRepl reads lines until EOF or :quit and parses each as test file text.
func runRepl(reg *registry.Registry, cfg *config.Config) int {
	fmt.Printf("cgtcase %s, expecting {%s}. Type :help for help.\n", programVersion, config.ExpectedVersion)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			return 1
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		err = evalLine(line, reg, cfg, os.Stdout)
		if errors.Is(err, errQuit) {
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

// evalLine runs a session command or parses line and writes its cases to w.
func evalLine(line string, reg *registry.Registry, cfg *config.Config, w io.Writer) error {
	if cmd := strings.TrimSpace(line); strings.HasPrefix(cmd, ":") {
		switch strings.ToLower(cmd) {
		case ":quit", ":q":
			return errQuit
		case ":help":
			fmt.Fprintln(w, replHelp)
		case ":families":
			fmt.Fprintln(w, strings.Join(reg.Families(), " "))
		default:
			fmt.Fprintf(w, "unknown command %s. Type :help for help.\n", cmd)
		}
		return nil
	}

	p, err := parser.FromString(line, reg, cfg)
	if err != nil {
		return err
	}
	defer p.Close() //nolint:errcheck // G104: string source

	var cw output.CaseWriter
	var ow *output.OutputWriter
	if cfg.Output.JSONFormat {
		cw = output.NewJSONWriterSingle(w, cfg)
	} else {
		ow = output.NewOutputWriter(w, int(cfg.Output.MaxLineLength))
	}

	n := 0
	for {
		c, err := p.ParseChunk()
		if err != nil {
			return err
		}
		if c == nil {
			break
		}
		n++
		if cw != nil {
			err = cw.WriteCase(c)
		} else {
			output.OutputCase(c, cfg, ow)
			err = ow.Err()
		}
		c.Cleanup()
		if err != nil {
			return err
		}
	}
	if n == 0 {
		fmt.Fprintln(w, "no cases: end the games with a run command such as {B}")
	}
	return nil
}
