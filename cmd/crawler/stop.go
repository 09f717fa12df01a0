package main

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// stopTrigger turns operator input into a single stop command. Later
// requests are ignored.
type stopTrigger struct {
	ch     chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func newStopTrigger(l *slog.Logger) *stopTrigger {
	return &stopTrigger{ch: make(chan struct{}), logger: l}
}

// C is closed when the stop command has been issued.
func (s *stopTrigger) C() <-chan struct{} { return s.ch }

func (s *stopTrigger) fire(source string) {
	s.once.Do(func() {
		s.logger.Info("stop requested", "source", source)
		close(s.ch)
	})
}

// isStopCommand reports whether an input line asks to stop.
func isStopCommand(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "stop", "stopscript()", "q", "quit":
		return true
	}
	return false
}

// watchInput reads r line by line until a stop command or EOF.
func (s *stopTrigger) watchInput(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if isStopCommand(sc.Text()) {
			s.fire("input")
			return
		}
		s.logger.Info(`unknown command, type "stop" to finish`, "input", sc.Text())
	}
}
