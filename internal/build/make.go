package build

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bianoble/testharness/internal/runner"
)

// MakeDriver builds with two keep-going make invocations: PreBuild, then All.
type MakeDriver struct {
	Make         string // defaults to "make"
	PreBuildJobs int    // defaults to 8
	AllJobs      int    // defaults to 24
	Runner       runner.Runner
	Logger       *zap.Logger
}

// Build runs both targets in req.ClonedDir. A failing PreBuild does not
// stop All from running; every failure is reported in the returned error.
// The harness's own working directory is never changed.
func (d *MakeDriver) Build(ctx context.Context, req Request) (*Result, error) {
	log := nopIfNil(d.Logger).With(zap.String("dir", req.ClonedDir))
	run := runnerOrExec(d.Runner, d.Logger)

	steps := []struct {
		target string
		jobs   int
	}{
		{"PreBuild", orDefault(d.PreBuildJobs, 8)},
		{"All", orDefault(d.AllJobs, 24)},
	}

	result := &Result{}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			result.Targets = append(result.Targets, TargetResult{Target: step.target, ExitCode: -1, Err: err})
			continue
		}

		cmd := runner.Command{
			Binary: d.makeTool(),
			Args:   []string{step.target, fmt.Sprintf("-j%d", step.jobs), "-k"},
			Dir:    req.ClonedDir,
		}
		log.Info("running make target", zap.String("target", step.target), zap.Int("jobs", step.jobs))

		tr := TargetResult{Target: step.target, Command: cmd.String()}
		res, err := run.Run(ctx, cmd)
		switch {
		case err != nil:
			tr.ExitCode = -1
			tr.Err = err
			log.Error("make failed to run", zap.String("target", step.target), zap.Error(err))
		case !res.Success():
			tr.ExitCode = res.ExitCode
			tr.Output = res.Output
			log.Warn("make target failed", zap.String("target", step.target), zap.Int("exit_code", res.ExitCode))
		default:
			tr.Output = res.Output
		}
		result.Targets = append(result.Targets, tr)
	}

	failed := result.Failed()
	if len(failed) == 0 {
		return result, nil
	}

	buildErr := &BuildError{
		Solution:      req.ClonedDir,
		Configuration: req.Configuration,
		ExitCode:      failed[0].ExitCode,
		Err:           failed[0].Err,
	}
	for _, f := range failed {
		buildErr.Failed = append(buildErr.Failed, f.Target)
	}
	return result, buildErr
}

func (d *MakeDriver) makeTool() string {
	if d.Make == "" {
		return "make"
	}
	return d.Make
}

func orDefault(v, def int) int {
	if v < 1 {
		return def
	}
	return v
}
