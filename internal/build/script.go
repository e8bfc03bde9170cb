package build

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bianoble/testharness/internal/runner"
)

// DefaultScript is the Windows build entry point.
const DefaultScript = "BuildSolution.bat"

// ScriptDriver builds through a batch script taking
// (build|rebuild, solution, configuration).
type ScriptDriver struct {
	Script string
	Runner runner.Runner
	Logger *zap.Logger
}

// Build runs the script once from the harness's working directory, where a
// script given by bare name is looked up first. SolutionPath is passed as
// given; ClonedDir is not used.
func (d *ScriptDriver) Build(ctx context.Context, req Request) (*Result, error) {
	log := nopIfNil(d.Logger)
	script := d.Script
	if script == "" {
		script = DefaultScript
	}

	mode := "build"
	if req.Rebuild {
		mode = "rebuild"
	}
	configuration := strings.ToLower(req.Configuration)
	cmd := runner.Command{
		Binary: runner.Local(script),
		Args:   []string{mode, req.SolutionPath, configuration},
	}

	log.Info("building solution",
		zap.String("solution", req.SolutionPath),
		zap.String("configuration", configuration),
		zap.String("mode", mode))

	target := TargetResult{Target: mode, Command: cmd.String()}
	res, err := runnerOrExec(d.Runner, d.Logger).Run(ctx, cmd)
	if err != nil {
		target.ExitCode = -1
		target.Err = err
		log.Error("build script failed to run", zap.Error(err))
		return &Result{Targets: []TargetResult{target}}, &BuildError{
			Solution:      req.SolutionPath,
			Configuration: configuration,
			ExitCode:      -1,
			Failed:        []string{mode},
			Err:           err,
		}
	}

	target.ExitCode = res.ExitCode
	target.Output = res.Output
	result := &Result{Targets: []TargetResult{target}}
	if !res.Success() {
		log.Error("build script reported failure", zap.Int("exit_code", res.ExitCode))
		return result, &BuildError{
			Solution:      req.SolutionPath,
			Configuration: configuration,
			ExitCode:      res.ExitCode,
			Failed:        []string{mode},
		}
	}

	log.Info("built solution", zap.Duration("duration", res.Duration))
	return result, nil
}
