package document

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Runner abstracts external command execution so readers can be stubbed in
// tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	logger *zap.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()

	if err != nil {
		r.logger.Debug("exec failed",
			zap.String("cmd", name),
			zap.String("args", strings.Join(args, " ")),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.Error(err),
		)
	} else {
		r.logger.Debug("exec ok",
			zap.String("cmd", name),
			zap.String("args", strings.Join(args, " ")),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.Int("stdout_bytes", out.Len()),
		)
	}

	return out.Bytes(), errb.Bytes(), err
}
