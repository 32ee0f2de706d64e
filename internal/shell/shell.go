// Package shell implements the interactive command loop driving a
// tansu-server over its HTTP API.
package shell

import (
	"errors"
	"fmt"

	"github.com/tansudb/tansu/internal/client"
)

// Shell reads commands from a prompter and executes them against the server.
type Shell struct {
	client   *client.Client
	prompter Prompter
	parser   Parser
}

// New creates a shell over a logged-in client.
func New(c *client.Client) *Shell {
	return NewWithPrompter(c, NewInteractivePrompter())
}

// NewWithPrompter creates a shell with a caller-supplied prompter.
func NewWithPrompter(c *client.Client, prompter Prompter) *Shell {
	return &Shell{
		client:   c,
		prompter: prompter,
		parser:   NewParser(),
	}
}

// Run loops until exit or end of input. Command errors are printed and the
// loop continues.
func (s *Shell) Run() error {
	for {
		line, ok, err := s.prompter.Prompt()
		if err != nil {
			return fmt.Errorf("failed to read command from prompt: %w", err)
		}
		if !ok {
			fmt.Println()
			return nil
		}

		command, err := s.parser.Parse(line)
		if err != nil {
			if !errors.Is(err, errEmpty) {
				s.prompter.PrintError(err.Error())
			}
			continue
		}

		switch command.Kind {
		case commandPut:
			if err := s.client.Put(command.Row, command.Timestamp, command.Value); err != nil {
				s.prompter.PrintError(err.Error())
			}
		case commandGet:
			entry, err := s.client.Get(command.Row)
			if err != nil {
				s.prompter.PrintError(err.Error())
				continue
			}
			s.prompter.PrintResult(entry.Value)
		case commandDelete:
			if err := s.client.Delete(command.Row, command.Timestamp); err != nil {
				s.prompter.PrintError(err.Error())
			}
		case commandFlush:
			if err := s.client.Flush(command.Cache); err != nil {
				s.prompter.PrintError(err.Error())
			}
		case commandExit:
			return nil
		}
	}
}
