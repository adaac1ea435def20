package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/turboladen/selfie/internal/config"
	"github.com/turboladen/selfie/internal/event"
	"github.com/turboladen/selfie/internal/fsport"
	"github.com/turboladen/selfie/internal/pkgdef"
	"github.com/turboladen/selfie/internal/runner"
)

// Progress totals, fixed per operation kind (spec.md §4.6/§9).
const (
	checkTotalSteps    = 3
	installTotalSteps  = 5
	validateTotalSteps = 5
	infoTotalSteps     = 3
	listTotalSteps     = 3
	createTotalSteps   = 2
)

// Engine is the Operation Engine: it owns a Package Repository, a Command
// Runner, and a Filesystem Port, and composes them into one event stream
// per operation (spec.md §4.6).
type Engine struct {
	repo   *pkgdef.Repository
	runner runner.Runner
	fs     fsport.FS
	cfg    config.AppConfig
	logger *logrus.Entry
}

// New returns an Engine configured to operate against cfg.PackageDirectory
// through fs, using r to execute package commands.
func New(fs fsport.FS, r runner.Runner, cfg config.AppConfig, logger *logrus.Entry) *Engine {
	return &Engine{
		repo:   pkgdef.NewRepository(fs, cfg.PackageDirectory, cfg.MaxParallelInstallations),
		runner: r,
		fs:     fs,
		cfg:    cfg,
		logger: logger,
	}
}

// start spawns the producer goroutine fn, returning the channel immediately
// as every Engine operation method does. fn is responsible for sending
// Started first and exactly one terminal event last, then it must return —
// Close is always called after fn returns.
func (e *Engine) start(ctx context.Context, op event.Info, fn func(ctx context.Context, p *event.Producer)) *event.Channel {
	ch := event.NewChannel(ctx)
	p := event.NewProducer(ch, op)
	go func() {
		defer p.Close()
		fn(ctx, p)
	}()
	return ch
}

// checkDirectory is the spec.md §4.7 directory-not-found special case:
// every operation's first move is to confirm the package directory
// exists before touching the repository.
func (e *Engine) checkDirectory(p *event.Producer) bool {
	if e.fs.PathExists(e.cfg.PackageDirectory) {
		return true
	}
	p.Send(event.NewError(p.Info(), &DirectoryNotFoundError{Path: e.cfg.PackageDirectory},
		"Package directory not found"))
	p.Send(event.NewCompletedFailure(p.Info(), "package directory not found"))
	return false
}

// DirectoryNotFoundError is emitted when the configured package directory
// does not exist on disk.
type DirectoryNotFoundError struct {
	Path string
}

func (e *DirectoryNotFoundError) Error() string {
	return "package directory not found: " + e.Path
}
