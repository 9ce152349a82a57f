// Package orchestrator runs the project, simulator, packager, build, install
// and launch steps in order. Each step aborts the run on failure.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vburojevic/runios/internal/domain"
	"github.com/vburojevic/runios/internal/output"
	"github.com/vburojevic/runios/internal/packager"
	"github.com/vburojevic/runios/internal/simulator"
	"github.com/vburojevic/runios/internal/terminal"
	"github.com/vburojevic/runios/internal/xcode"
)

// StatusProber reports whether the packager is up
type StatusProber interface {
	Status(ctx context.Context) domain.PackagerStatus
	StatusURL() string
}

// Pipeline holds the collaborators of a run
type Pipeline struct {
	Simulators   *simulator.Manager
	Builder      *xcode.Builder
	Bundle       xcode.BundleIDReader
	Packager     StatusProber
	Terminal     terminal.Launcher
	Emitter      *output.Emitter
	Log          *zap.Logger
	Clock        clock.Clock
	WaitInterval time.Duration
}

// Result summarizes a successful run
type Result struct {
	Project          domain.XcodeProject
	Scheme           string
	Simulator        domain.Simulator
	PackagerStatus   domain.PackagerStatus
	PackagerLaunched bool
	AppPath          string
	BundleID         string
}

// Run executes the sequence
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	res := &Result{}

	iosDir := filepath.Join(opts.ProjectRoot, opts.ProjectPath)
	project, err := xcode.DiscoverProject(iosDir)
	if err != nil {
		return nil, stepErr(StepProject, err)
	}
	res.Project = project
	p.info(StepProject, fmt.Sprintf("Found Xcode %s %s", project.Kind(), project.Name))

	res.Scheme = opts.Scheme
	if res.Scheme == "" {
		res.Scheme = xcode.InferScheme(project)
	}
	log.Debug("scheme resolved", zap.String("scheme", res.Scheme))
	p.info(StepScheme, fmt.Sprintf("Using scheme %s", res.Scheme))

	// The packager probe runs while the device list is fetched and the
	// simulator boots; its result is first needed when deciding whether to
	// start the packager.
	probeCtx, cancelProbe := context.WithCancel(ctx)
	var probe errgroup.Group
	defer func() {
		cancelProbe()
		_ = probe.Wait()
	}()
	if !opts.NoPackager {
		probe.Go(func() error {
			res.PackagerStatus = p.Packager.Status(probeCtx)
			return nil
		})
	}

	list, err := p.Simulators.ListSimulators(ctx, opts.ListFormat)
	if err != nil {
		return nil, stepErr(StepList, err)
	}

	sim, err := p.selectSimulator(ctx, list.Simulators, opts)
	if err != nil {
		return nil, stepErr(StepSelect, err)
	}
	res.Simulator = sim

	if !sim.IsBooted() {
		p.info(StepBoot, fmt.Sprintf("Launching %s...", sim.FullName()))
	}
	if err := p.Simulators.ForceBoot(ctx, sim, opts.BootWith); err != nil {
		return nil, stepErr(StepBoot, err)
	}

	_ = probe.Wait()
	if !opts.NoPackager {
		launched, err := p.ensurePackager(ctx, opts, res.PackagerStatus)
		if err != nil {
			return nil, stepErr(StepPackager, err)
		}
		res.PackagerLaunched = launched
	}

	params := xcode.BuildParams{
		Dir:             iosDir,
		Project:         project,
		Scheme:          res.Scheme,
		DestinationUDID: sim.UDID,
		Configuration:   opts.Configuration,
	}
	p.info(StepBuild, fmt.Sprintf("Building using %q", p.Builder.CommandLine(params)))
	if err := p.Builder.Build(ctx, params); err != nil {
		return nil, stepErr(StepBuild, err)
	}

	res.AppPath = filepath.Join(iosDir, params.AppPath())
	p.info(StepInstall, fmt.Sprintf("Installing %s", res.AppPath))
	if err := p.Simulators.Install(ctx, sim.UDID, res.AppPath); err != nil {
		return nil, stepErr(StepInstall, err)
	}

	res.BundleID, err = p.Bundle.BundleID(ctx, res.AppPath)
	if err != nil {
		return nil, stepErr(StepBundleID, err)
	}

	p.info(StepLaunch, fmt.Sprintf("Launching %s", res.BundleID))
	if err := p.Simulators.Launch(ctx, sim.UDID, res.BundleID); err != nil {
		return nil, stepErr(StepLaunch, err)
	}

	if p.Emitter != nil {
		_ = p.Emitter.Launched(&output.LaunchedOutput{
			Simulator:     sim.FullName(),
			UDID:          sim.UDID,
			Scheme:        res.Scheme,
			Configuration: opts.Configuration,
			AppPath:       res.AppPath,
			BundleID:      res.BundleID,
		})
	}
	return res, nil
}

func (p *Pipeline) selectSimulator(ctx context.Context, sims []domain.Simulator, opts Options) (domain.Simulator, error) {
	switch {
	case opts.UDID != "":
		if sim, ok := simulator.SelectByUDID(sims, opts.UDID); ok {
			return sim, nil
		}
		return domain.Simulator{}, &domain.SelectionError{Requested: opts.UDID, ByUDID: true}
	case opts.Pick != nil:
		return opts.Pick(ctx, sims)
	default:
		if sim, ok := simulator.Select(sims, opts.Simulator); ok {
			return sim, nil
		}
		return domain.Simulator{}, &domain.SelectionError{Requested: opts.Simulator}
	}
}

// ensurePackager starts the packager unless status says it is already up.
// It reports whether a window was opened.
func (p *Pipeline) ensurePackager(ctx context.Context, opts Options, status domain.PackagerStatus) (bool, error) {
	switch status {
	case domain.PackagerRunning:
		p.info(StepPackager, "JS server already running.")
		return false, nil
	case domain.PackagerUnrecognized:
		p.warn(fmt.Sprintf("%s did not answer like a packager; starting a new one anyway", p.Packager.StatusURL()))
	}

	script := filepath.Join(opts.ProjectRoot, opts.PackagerScript)
	p.info(StepPackager, fmt.Sprintf("Starting the packager in %s", p.Terminal.Name()))
	err := p.Terminal.Open(ctx, script, opts.ProjectRoot)
	if errors.Is(err, terminal.ErrUnsupportedPlatform) {
		p.warn(fmt.Sprintf("Cannot open a terminal window on this platform. Start the packager yourself with: sh %s", script))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if opts.WaitPackager > 0 {
		p.waitPackager(ctx, opts.WaitPackager)
	}
	return true, nil
}

func (p *Pipeline) waitPackager(ctx context.Context, timeout time.Duration) {
	clk := p.Clock
	if clk == nil {
		clk = clock.New()
	}
	interval := p.WaitInterval
	if interval <= 0 {
		interval = DefaultWaitInterval
	}

	err := packager.WaitRunning(ctx, clk, p.Packager.Status, interval, timeout)
	switch {
	case err == nil:
		p.info(StepPackager, "Packager is ready.")
	case errors.Is(err, packager.ErrWaitTimeout):
		p.warn(fmt.Sprintf("Packager not ready after %s; continuing", timeout))
	default:
		p.warn(fmt.Sprintf("Stopped waiting for the packager: %v", err))
	}
}

func (p *Pipeline) info(step, msg string) {
	if p.Emitter != nil {
		_ = p.Emitter.Info(step, msg)
	}
}

func (p *Pipeline) warn(msg string) {
	if p.Emitter != nil {
		_ = p.Emitter.Warning(msg)
	}
}
