package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// spellTokens parses and writes every token, stopping at the first one that
// is not an integer.
func spellTokens(sw *spellWriter, tokens []string) error {
	for _, tok := range tokens {
		n, err := parseNumber(tok)
		if err != nil {
			return err
		}
		if err := sw.write(n); err != nil {
			return err
		}
	}
	return nil
}

// spellStream reads whitespace-separated integers from r until EOF.
func spellStream(sw *spellWriter, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		if err := spellTokens(sw, []string{sc.Text()}); err != nil {
			return err
		}
	}
	return sc.Err()
}

// spellInteractive prompts for numbers on a terminal, keeping history in
// historyFile. Ctrl-D or "exit" ends the session.
func spellInteractive(sw *spellWriter, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          appName + "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := spellTokens(sw, strings.Fields(line)); err != nil {
			return err
		}
	}
}

func stdinIsTerminal() bool {
	return readline.IsTerminal(int(os.Stdin.Fd()))
}
