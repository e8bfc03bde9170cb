package testharness

import (
	"github.com/bianoble/testharness/internal/build"
	"github.com/bianoble/testharness/internal/config"
	"github.com/bianoble/testharness/internal/dirs"
	"github.com/bianoble/testharness/internal/replicate"
	"github.com/bianoble/testharness/internal/repo"
	"github.com/bianoble/testharness/internal/report"
	"github.com/bianoble/testharness/internal/runner"
)

// Type aliases re-export internal types as the public API.

type Config = config.Config
type ConfigLayer = config.ConfigLayerInfo

type Runner = runner.Runner
type Command = runner.Command
type CommandResult = runner.Result

type BuildRequest = build.Request
type BuildResult = build.Result
type BuildError = build.BuildError

type CopyResult = replicate.Result
type CopyError = replicate.CopyError

type DirError = dirs.Error

type CleanOrMakeError = repo.CleanOrMakeError
type CloneError = repo.CloneError
type GitMetadataError = repo.GitMetadataError
type GitInfo = repo.Info

type TestSetResult = report.TestSetResult
type MailError = report.MailError
