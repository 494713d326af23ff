package vercel

import (
	"context"
	"time"

	"github.com/abdul-hamid-achik/vercel-env-push/packages/core/env"
	apperrors "github.com/abdul-hamid-achik/vercel-env-push/packages/errors"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/logging"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/process"
	"github.com/abdul-hamid-achik/vercel-env-push/packages/ratelimit"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// OperationKind distinguishes the two phases of a sync
type OperationKind string

const (
	OperationRemove OperationKind = "remove"
	OperationAdd    OperationKind = "add"
)

// Operation is one scheduled CLI call. Values are never stored here.
type Operation struct {
	Kind        OperationKind
	Environment string
	Key         string
	// Index is the position in scheduling order within the phase
	Index int
}

// Outcome is how a single operation settled
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeSkipped is a remove of a variable that did not exist remotely
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Observer receives sync lifecycle events. Implementations must be safe for
// concurrent use since operations finish on their own goroutines.
type Observer interface {
	PhaseStarted(kind OperationKind, total int)
	OperationStarted(op Operation)
	OperationFinished(op Operation, outcome Outcome, duration time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) PhaseStarted(OperationKind, int)                            {}
func (nopObserver) OperationStarted(Operation)                                 {}
func (nopObserver) OperationFinished(Operation, Outcome, time.Duration, error) {}

// Observers fans events out to several observers
type Observers []Observer

func (o Observers) PhaseStarted(kind OperationKind, total int) {
	for _, obs := range o {
		obs.PhaseStarted(kind, total)
	}
}

func (o Observers) OperationStarted(op Operation) {
	for _, obs := range o {
		obs.OperationStarted(op)
	}
}

func (o Observers) OperationFinished(op Operation, outcome Outcome, d time.Duration, err error) {
	for _, obs := range o {
		obs.OperationFinished(op, outcome, d, err)
	}
}

// Syncer replaces remote environment variables with a local set
type Syncer struct {
	commander Commander
	limiter   *ratelimit.Limiter
	observer  Observer
	logger    zerolog.Logger
}

// SyncerOption configures a Syncer
type SyncerOption func(*Syncer)

// WithObserver registers an observer for lifecycle events
func WithObserver(obs Observer) SyncerOption {
	return func(s *Syncer) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// NewSyncer creates a Syncer. A nil limiter admits everything.
func NewSyncer(commander Commander, limiter *ratelimit.Limiter, opts ...SyncerOption) *Syncer {
	if limiter == nil {
		limiter = ratelimit.Unlimited()
	}

	s := &Syncer{
		commander: commander,
		limiter:   limiter,
		observer:  nopObserver{},
		logger:    logging.GetLogger("sync"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Operations lists the calls one phase schedules, in (key, environment) order
func Operations(kind OperationKind, environments []string, vars *env.Vars) []Operation {
	ops := make([]Operation, 0, vars.Len()*len(environments))
	for _, key := range vars.Keys() {
		for _, environment := range environments {
			ops = append(ops, Operation{
				Kind:        kind,
				Environment: environment,
				Key:         key,
				Index:       len(ops),
			})
		}
	}
	return ops
}

// Replace removes every key from every environment, then adds them back with
// their new values. Each phase lets all of its operations settle before the
// first failure in scheduling order is reported; the add phase never starts
// when a remove failed.
func (s *Syncer) Replace(ctx context.Context, environments []string, vars *env.Vars) error {
	done := logging.LogOperationStart(s.logger, "replace")
	defer done()

	removals := Operations(OperationRemove, environments, vars)
	if err := s.runPhase(ctx, OperationRemove, removals, func(ctx context.Context, op Operation) error {
		return s.commander.Remove(ctx, op.Environment, op.Key)
	}); err != nil {
		return err
	}

	additions := Operations(OperationAdd, environments, vars)
	return s.runPhase(ctx, OperationAdd, additions, func(ctx context.Context, op Operation) error {
		value, _ := vars.Get(op.Key)
		return s.commander.Add(ctx, op.Environment, op.Key, value)
	})
}

func (s *Syncer) runPhase(ctx context.Context, kind OperationKind, ops []Operation, call func(context.Context, Operation) error) error {
	s.logger.Debug().Str("phase", string(kind)).Int("operations", len(ops)).Msg("Phase started")
	s.observer.PhaseStarted(kind, len(ops))

	errs := make([]error, len(ops))
	var g errgroup.Group

	for i, op := range ops {
		g.Go(func() error {
			errs[i] = s.runOperation(ctx, op, call)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			return wrapOperationError(ops[i], err)
		}
	}

	s.logger.Debug().Str("phase", string(kind)).Msg("Phase completed")
	return nil
}

func (s *Syncer) runOperation(ctx context.Context, op Operation, call func(context.Context, Operation) error) error {
	release, err := s.limiter.Admit(ctx)
	defer release()
	if err != nil {
		s.observer.OperationFinished(op, OutcomeFailed, 0, err)
		return err
	}

	s.observer.OperationStarted(op)
	start := time.Now()
	err = call(ctx, op)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		s.observer.OperationFinished(op, OutcomeSucceeded, elapsed, nil)
		return nil
	case op.Kind == OperationRemove && process.StderrContains(err, NotFoundMarker):
		s.logger.Debug().
			Str("key", op.Key).
			Str("environment", op.Environment).
			Msg("Variable not present remotely, nothing to remove")
		s.observer.OperationFinished(op, OutcomeSkipped, elapsed, nil)
		return nil
	default:
		s.observer.OperationFinished(op, OutcomeFailed, elapsed, err)
		return err
	}
}

func wrapOperationError(op Operation, err error) error {
	var e *apperrors.Error
	if op.Kind == OperationRemove {
		e = apperrors.Wrapf(err, apperrors.ErrRemoveFailed,
			"Unable to remove environment variable '%s' from '%s'.", op.Key, op.Environment)
	} else {
		e = apperrors.Wrapf(err, apperrors.ErrAddFailed,
			"Unable to add environment variable '%s' to '%s'.", op.Key, op.Environment)
	}
	return e.WithDetail("environment", op.Environment).WithDetail("key", op.Key)
}
