package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vburojevic/deskbell/internal/teams"
)

// ClassifyCmd runs the classifier over a log file and prints the verdict for
// every line plus the resolution of the whole batch, as the startup scan of
// watch would apply it.
type ClassifyCmd struct {
	File string `arg:"" optional:"" type:"path" help:"Log file to classify (default: stdin)"`
}

// Run executes the classify command
func (c *ClassifyCmd) Run(globals *Globals) error {
	in := globals.Stdin
	if c.File != "" && c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return outputErrorCommon(globals, codeLogNotFound, fmt.Sprintf("open log: %v", err))
		}
		defer f.Close()
		in = f
	}

	lines, err := readLines(in)
	if err != nil {
		return outputErrorCommon(globals, codeInvalidInput, err.Error())
	}

	emitter := globals.Emitter()
	for i, line := range lines {
		if err := emitter.WriteClassification(i+1, teams.Classify(line)); err != nil {
			return err
		}
	}

	parser := teams.NewParser(newLogger(globals.Stderr, globals.Verbose), nil)
	return emitter.WriteResolution(len(lines), parser.Resolve(lines))
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}
