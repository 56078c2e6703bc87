package otp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
)

// CommandVerifier checks one-time codes by running an external program as
// `<command...> verify <username> <code>`. The program prints "true" for a valid code.
type CommandVerifier struct {
	name string
	args []string
}

// NewCommandVerifier splits command on whitespace into program and leading arguments.
func NewCommandVerifier(command string) (*CommandVerifier, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("otp command is empty")
	}
	return &CommandVerifier{name: fields[0], args: fields[1:]}, nil
}

var _ portssvc.OTPVerifier = (*CommandVerifier)(nil)

// Verify runs the program under ctx. A non-zero exit status is an error, not a rejection.
func (v *CommandVerifier) Verify(ctx context.Context, username, code string) (bool, error) {
	args := append(append([]string{}, v.args...), "verify", username, code)
	cmd := exec.CommandContext(ctx, v.name, args...)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, fmt.Errorf("otp command: %w", ctxErr)
		}
		return false, fmt.Errorf("otp command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()) == "true", nil
}
