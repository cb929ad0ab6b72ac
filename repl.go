package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/chative-retail-orchestrator/agent/agents/orchestrator"
	contractx "github.com/tanpawarit/chative-retail-orchestrator/agent/contract"
)

type turnHandler interface {
	HandleMessage(ctx context.Context, sessionID string, text string) (orchestrator.TurnResult, error)
	Reset(ctx context.Context, sessionID string) error
}

type replOptions struct {
	Prompt    bool // banner and "You: " before each read
	ShowTrace bool
}

// runREPL reads one turn per line until EOF, quit, exit or ctx is done.
// Cancellation is noticed while waiting for input too.
func runREPL(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	h turnHandler,
	sessionID string,
	opts replOptions,
) error {
	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines, errc := readLines(readCtx, in)
	if opts.Prompt {
		fmt.Fprintf(out, "Retail assistant ready (session %s). Type quit to leave, /reset to start over.\n", sessionID)
	}

	for {
		if opts.Prompt {
			fmt.Fprint(out, "You: ")
		}
		var text string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					return err
				default:
					return nil
				}
			}
			text = l
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(text)
		switch strings.ToLower(line) {
		case "quit", "exit":
			fmt.Fprintln(out, "Bye.")
			return nil
		case "/reset":
			if err := h.Reset(ctx, sessionID); err != nil {
				log.Error().Err(err).Str("session_id", sessionID).Msg("reset failed")
				fmt.Fprintln(out, "Bot: Could not reset the session.")
				continue
			}
			fmt.Fprintln(out, "Bot: Session cleared.")
			continue
		}

		res, err := h.HandleMessage(ctx, sessionID, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintln(out, "Bot: Sorry, something went wrong. Please try again.")
			continue
		}

		if opts.ShowTrace {
			for _, ev := range res.Events {
				fmt.Fprintln(out, formatTrace(ev))
			}
		}
		for _, reply := range res.Replies {
			fmt.Fprintf(out, "Bot: %s\n", reply)
		}
	}
}

// readLines scans in on its own goroutine. lines is closed at EOF, on a read
// error (sent on errc first) or once ctx is done.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errc <- err
		}
	}()
	return lines, errc
}

func formatTrace(ev contractx.TraceEvent) string {
	switch {
	case ev.Rule != "":
		return fmt.Sprintf("  [%s] %s -> %s", ev.Node, ev.Rule, ev.Next)
	case ev.Message != "":
		return fmt.Sprintf("  [%s] %s", ev.Node, ev.Message)
	default:
		return fmt.Sprintf("  [%s]", ev.Node)
	}
}
