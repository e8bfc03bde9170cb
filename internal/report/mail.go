package report

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/bianoble/testharness/internal/config"
	"github.com/bianoble/testharness/internal/runner"
)

// The mail utilities reject an empty body, so a blank placeholder is sent.
const (
	blatBody      = "   "
	sendEmailBody = "    "
)

// MailError reports a mail utility that could not be run or exited nonzero.
type MailError struct {
	Tool     string
	Step     string // "recipients", "install" or "send"
	ExitCode int
	Output   string
	Err      error
}

func (e *MailError) Error() string {
	msg := fmt.Sprintf("mail %s via %s failed", e.Step, e.Tool)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code %d)", e.ExitCode)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *MailError) Unwrap() error {
	return e.Err
}

type mailStep struct {
	name string
	cmd  runner.Command
}

// Mailer sends result reports through an external mail utility: blat on
// Windows, sendEmail elsewhere.
type Mailer struct {
	Runner runner.Runner
	GOOS   string
	Config config.Mail
	Logger *zap.Logger
}

// Dispatch mails attachments to the recipients listed in the configured file.
// Only the utility's exit status is checked; delivery is not confirmed.
func (m *Mailer) Dispatch(ctx context.Context, subject string, attachments []string) error {
	log := m.Logger
	if log == nil {
		log = zap.NewNop()
	}
	run := m.Runner
	if run == nil {
		run = &runner.Exec{Logger: m.Logger}
	}
	goos := m.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	tool := m.Config.UnixTool
	if goos == "windows" {
		tool = m.Config.WindowsTool
	}

	data, err := os.ReadFile(m.Config.RecipientsFile)
	if err != nil {
		return &MailError{Tool: tool, Step: "recipients", Err: err}
	}
	recipients := strings.TrimSpace(string(data))
	if recipients == "" {
		return &MailError{Tool: tool, Step: "recipients",
			Err: fmt.Errorf("no recipients in %s", m.Config.RecipientsFile)}
	}

	var steps []mailStep
	add := func(name string, args ...string) {
		steps = append(steps, mailStep{name, runner.Command{Binary: tool, Args: args}})
	}

	if goos == "windows" {
		add("install", "-install", m.Config.Server, m.Config.Sender)
		args := []string{"-to", recipients, "-subject", subject, "-body", blatBody}
		for _, a := range attachments {
			args = append(args, "-attach", a)
		}
		add("send", args...)
	} else {
		args := []string{"-s", m.Config.Server, "-f", m.Config.Sender, "-t", recipients,
			"-u", subject, "-m", sendEmailBody, "-o", "tls=no"}
		if len(attachments) > 0 {
			args = append(append(args, "-a"), attachments...)
		}
		add("send", args...)
	}

	for _, s := range steps {
		res, err := run.Run(ctx, s.cmd)
		if err != nil {
			return &MailError{Tool: tool, Step: s.name, ExitCode: -1, Err: err}
		}
		if !res.Success() {
			return &MailError{Tool: tool, Step: s.name, ExitCode: res.ExitCode, Output: res.Output}
		}
	}

	log.Info("dispatched report",
		zap.String("subject", subject),
		zap.String("tool", tool),
		zap.Int("attachments", len(attachments)))
	return nil
}
