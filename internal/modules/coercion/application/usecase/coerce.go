package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"safeCast/internal/modules/coercion/domain"
	"safeCast/internal/shared/normalization"
)

var (
	// ErrEmptyBatch is returned when a batch carries no items.
	ErrEmptyBatch = errors.New("empty batch")
	// ErrBatchTooLarge is returned when a batch exceeds the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")
)

// CoerceInput is a decoded coercion request.
type CoerceInput struct {
	RequestID string
	Target    string
	Value     domain.Value
}

// CoerceUseCase runs coercions and classifications for every transport.
type CoerceUseCase struct {
	maxItems    int
	concurrency int
}

func NewCoerceUseCase(maxItems, concurrency int) *CoerceUseCase {
	if maxItems < 1 {
		maxItems = 1
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &CoerceUseCase{maxItems: maxItems, concurrency: concurrency}
}

// MaxItems is the largest batch ExecuteBatch accepts.
func (uc *CoerceUseCase) MaxItems() int { return uc.maxItems }

// Execute resolves the target and coerces the value, or classifies it when
// the target is the collection target. The returned result is always filled
// in, also when err is non-nil.
func (uc *CoerceUseCase) Execute(ctx context.Context, in CoerceInput) (domain.Result, error) {
	result := domain.Result{RequestID: in.RequestID, Target: domain.Target(in.Target)}
	if err := ctx.Err(); err != nil {
		return withError(result, err)
	}

	target, err := normalization.ParseTarget(in.Target)
	if err != nil {
		return withError(result, err)
	}
	result.Target = target

	if target == domain.TargetCollection {
		container, err := domain.Classify(in.Value)
		if err != nil {
			return withError(result, err)
		}
		result.Collection = container
		return result, nil
	}

	value, err := domain.Coerce(in.Value, target)
	if err != nil {
		return withError(result, err)
	}
	result.Value = &value
	return result, nil
}

// ExecuteCommand decodes the raw value of cmd and executes it.
func (uc *CoerceUseCase) ExecuteCommand(ctx context.Context, cmd domain.CoerceCommand) (domain.Result, error) {
	value, err := normalization.DecodeJSON(cmd.Value)
	if err != nil {
		return withError(domain.Result{RequestID: cmd.RequestID, Target: domain.Target(cmd.Target)}, err)
	}
	return uc.Execute(ctx, CoerceInput{RequestID: cmd.RequestID, Target: cmd.Target, Value: value})
}

// ExecuteBatch runs every command with bounded concurrency. Results keep the
// order of cmds and carry their own failures; the error is only set when the
// batch as a whole is rejected or the context ends.
func (uc *CoerceUseCase) ExecuteBatch(ctx context.Context, cmds []domain.CoerceCommand) ([]domain.Result, error) {
	if len(cmds) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(cmds) > uc.maxItems {
		return nil, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(cmds), uc.maxItems)
	}

	results := make([]domain.Result, len(cmds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for i, cmd := range cmds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], _ = uc.ExecuteCommand(gctx, cmd)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if !r.Succeeded() {
			failed++
		}
	}
	slog.Debug("coercion batch executed", slog.Int("items", len(results)), slog.Int("failed", failed))
	return results, nil
}

func withError(result domain.Result, err error) (domain.Result, error) {
	if failure, ok := domain.AsFailure(err); ok {
		result.Failure = failure
	} else {
		result.Error = err.Error()
	}
	return result, err
}
