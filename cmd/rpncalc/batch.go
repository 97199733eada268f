package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/codefionn/rpncalc/internal/calc"
	"github.com/codefionn/rpncalc/internal/logger"
)

// runBatch pushes every line of in, then prints the stack to out, bottom
// first and one value per line. A failing line is reported and skipped like a
// rejected prompt in the interactive UI; the first such error is returned
// after the stack has been printed.
func runBatch(state *calc.State, in io.Reader, out io.Writer) error {
	logger.Info("Running in batch mode")

	var firstErr error
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		var err error
		switch line {
		case "":
			continue
		case "undo":
			err = state.Undo()
		case "redo":
			err = state.Redo()
		default:
			err = state.PushInput(line)
		}
		if err != nil {
			err = fmt.Errorf("line %d: %q: %w", lineNo, line, err)
			logger.Debug("%v", err)
			if firstErr == nil {
				firstErr = err
			}
			if calc.IsFatal(err) {
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	for _, v := range state.Stack() {
		if _, err := fmt.Fprintln(out, state.Format(v)); err != nil {
			return errors.Join(firstErr, err)
		}
	}
	return firstErr
}
