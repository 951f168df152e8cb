// Package format provides the code-formatting boundary applied to serialized
// markup. HTML is formatted by a built-in reindenter; any other syntax is
// delegated to a registered external command. Formatting failures always
// propagate to the caller.
package format

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Service dispatches formatting requests by syntax identifier.
type Service struct {
	commands map[string][]string
}

// NewService creates a formatter service with only the built-in html
// formatter available.
func NewService() *Service {
	return &Service{commands: make(map[string][]string)}
}

// RegisterCommand maps a syntax identifier to an external command invoked
// with the text on stdin, e.g. ("jsx", "prettier", "--parser", "babel").
func (s *Service) RegisterCommand(syntax string, argv ...string) {
	s.commands[syntax] = argv
}

// Format formats text for the named syntax.
func (s *Service) Format(ctx context.Context, text, syntax string) (string, error) {
	if syntax == "html" {
		return FormatHTML(text)
	}
	argv, ok := s.commands[syntax]
	if !ok || len(argv) == 0 {
		return "", fmt.Errorf("no formatter registered for syntax %q", syntax)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("formatter %s failed: %w: %s", argv[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
