// Package app implements the application layer for pkgmerge.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/pkgmerge/internal/core/domain"
	"go.trai.ch/pkgmerge/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.ManifestStore
	hasher       ports.Hasher
	logger       ports.Logger
	watcher      ports.Watcher
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.ManifestStore,
	hasher ports.Hasher,
	log ports.Logger,
	watcher ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		store:        store,
		hasher:       hasher,
		logger:       log,
		watcher:      watcher,
	}
}

// MergeOptions configures Merge and Watch.
type MergeOptions struct {
	// ConfigPath is read when no positional arguments are given.
	ConfigPath string
	// Check compares the merge result with the output instead of writing it.
	Check bool
}

// SetJSONLogs switches the logger between JSON and pretty output.
func (a *App) SetJSONLogs(enable bool) {
	a.logger.SetJSON(enable)
}

// Merge runs every merge job described by args or, without args, by the config file.
// A job that reads another job's output runs after it; the others run concurrently.
// The first failure cancels the rest.
func (a *App) Merge(ctx context.Context, args []string, opts MergeOptions) error {
	jobs, err := a.resolveJobs(args, opts.ConfigPath)
	if err != nil {
		return err
	}

	stages, err := planStages(jobs)
	if err != nil {
		return err
	}

	for _, stage := range stages {
		g, gctx := errgroup.WithContext(ctx)
		for _, job := range stage {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return a.runJob(job, opts.Check)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	return nil
}

// Watch merges every job once, then re-runs a job whenever its base or extra
// manifest changes. It returns when ctx is cancelled.
func (a *App) Watch(ctx context.Context, args []string, opts MergeOptions) error {
	jobs, err := a.resolveJobs(args, opts.ConfigPath)
	if err != nil {
		return err
	}

	stages, err := planStages(jobs)
	if err != nil {
		return err
	}
	jobs = slices.Concat(stages...)

	for _, job := range jobs {
		if err := a.runJob(job, false); err != nil {
			a.logger.Error(err)
		}
	}

	inputs := make([]string, 0, 2*len(jobs))
	for _, job := range jobs {
		inputs = append(inputs, job.BasePath, job.ExtraPath)
	}
	slices.Sort(inputs)
	inputs = slices.Compact(inputs)

	if err := a.watcher.Start(ctx, inputs); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.logger.Info(fmt.Sprintf("watching %d manifests", len(inputs)))

	for event := range a.watcher.Events() {
		for _, job := range jobs {
			if !slices.Contains(event.Paths, job.BasePath) && !slices.Contains(event.Paths, job.ExtraPath) {
				continue
			}
			if err := a.runJob(job, false); err != nil {
				a.logger.Error(err)
			}
		}
		if ctx.Err() != nil {
			break
		}
	}

	return nil
}

func (a *App) resolveJobs(args []string, configPath string) ([]domain.MergeConfig, error) {
	var jobs []domain.MergeConfig
	if len(args) > 0 {
		job, err := domain.NewMergeConfig(args)
		if err != nil {
			return nil, err
		}
		jobs = []domain.MergeConfig{job}
	} else {
		if configPath == "" {
			configPath = domain.ConfigFileName
		}
		loaded, err := a.configLoader.Load(configPath)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to load configuration")
		}
		jobs = loaded
	}

	outputs := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		output := filepath.Clean(job.OutputPath)
		if _, dup := outputs[output]; dup {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidMergeJob, "duplicate output"), "output", job.OutputPath)
		}
		outputs[output] = struct{}{}
	}

	return jobs, nil
}

// planStages groups jobs so that a job reading another job's output lands in a
// later stage than that job. A job reading its own output does not depend on itself.
// Declaration order is kept within a stage.
func planStages(jobs []domain.MergeConfig) ([][]domain.MergeConfig, error) {
	producer := make(map[string]int, len(jobs))
	for i, job := range jobs {
		producer[filepath.Clean(job.OutputPath)] = i
	}

	deps := make([][]int, len(jobs))
	for i, job := range jobs {
		for _, input := range []string{job.BasePath, job.ExtraPath} {
			if j, ok := producer[filepath.Clean(input)]; ok && j != i && !slices.Contains(deps[i], j) {
				deps[i] = append(deps[i], j)
			}
		}
	}

	stageOf := make([]int, len(jobs))
	for i := range stageOf {
		stageOf[i] = -1
	}

	var stages [][]domain.MergeConfig
	for placed := 0; placed < len(jobs); {
		var ready []int
		for i := range jobs {
			if stageOf[i] >= 0 {
				continue
			}
			if !slices.ContainsFunc(deps[i], func(j int) bool { return stageOf[j] < 0 }) {
				ready = append(ready, i)
			}
		}
		if len(ready) == 0 {
			var cycle []string
			for i, job := range jobs {
				if stageOf[i] < 0 {
					cycle = append(cycle, job.OutputPath)
				}
			}
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidMergeJob, "merge jobs depend on each other in a cycle"),
				"outputs", strings.Join(cycle, ", "))
		}

		stage := make([]domain.MergeConfig, 0, len(ready))
		for _, i := range ready {
			stageOf[i] = len(stages)
			stage = append(stage, jobs[i])
		}
		stages = append(stages, stage)
		placed += len(ready)
	}

	return stages, nil
}

func (a *App) runJob(job domain.MergeConfig, check bool) error {
	base, err := a.store.Load(job.BasePath)
	if err != nil {
		return err
	}
	extra, err := a.store.Load(job.ExtraPath)
	if err != nil {
		return err
	}

	merged, err := domain.MergeManifests(base, extra)
	if err != nil {
		return zerr.With(zerr.With(err, "base", job.BasePath), "extra", job.ExtraPath)
	}

	data, err := a.store.Render(merged)
	if err != nil {
		return err
	}

	current, err := a.hasher.ComputeFileHash(job.OutputPath)
	if err != nil {
		return err
	}
	upToDate := current == a.hasher.ComputeHash(data)

	if check {
		if !upToDate {
			return zerr.With(zerr.Wrap(domain.ErrOutputOutOfDate, "check failed"), "output", job.OutputPath)
		}
		a.logger.Info(job.OutputPath + " is up to date")
		return nil
	}

	if upToDate {
		a.logger.Info(job.OutputPath + " is unchanged")
		return nil
	}

	if err := a.store.Save(job.OutputPath, data); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("merged %s and %s into %s", job.BasePath, job.ExtraPath, job.OutputPath))

	return nil
}
