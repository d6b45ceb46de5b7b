package commands

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"

	"floorcheck/internal/domain/floor"
	"floorcheck/internal/infra"
	"floorcheck/internal/pkg/errs"
	"floorcheck/internal/pkg/tableref"
)

var (
	ErrUnauthorized       = errs.New("unauthorized")
	ErrMissingIdentity    = errs.New("missing identity")
	ErrBadTableReference  = errs.New("bad table reference")
	ErrFloorNotFound      = errs.New("floor not found")
	ErrTableNotFound      = errs.New("table not found")
	ErrStorageFailure     = errs.New("storage failure")
	errMaxRetriesExceeded = errs.New("check-in failed after max retries")
)

// CheckStatusParams is one check-in/check-out request. Floor may be empty
// when Table carries the legacy composite reference. BearerToken, when the
// body uid is absent, is resolved to a uid via the identity provider secret.
type CheckStatusParams struct {
	Auth        string
	UID         string
	BearerToken string
	Floor       string
	Table       string
}

// CheckResult mirrors the legacy wire contract: CheckedIn plus a delay in
// minutes, -1 signalling "held by someone else".
type CheckResult struct {
	Outcome      floor.Outcome
	CheckedIn    bool
	DelayMinutes int
}

type CheckInCommands interface {
	SetStatus(ctx context.Context, p CheckStatusParams) (*CheckResult, error)
}

type checkInUseCaseImpl struct {
	floors    FloorRepository
	gate      accessGate
	publisher Publisher
	tokens    TokenValidator
	logger    *slog.Logger
}

func NewCheckInCommands(
	floors FloorRepository,
	settings SettingsRepository,
	publisher Publisher,
	tokens TokenValidator,
	logger *slog.Logger,
) CheckInCommands {
	return &checkInUseCaseImpl{
		floors:    floors,
		gate:      accessGate{settings: settings},
		publisher: publisher,
		tokens:    tokens,
		logger:    logger,
	}
}

const maxSaveRetries = 3

func (u *checkInUseCaseImpl) SetStatus(ctx context.Context, p CheckStatusParams) (*CheckResult, error) {
	cfg, err := u.gate.authorize(ctx, p.Auth)
	if err != nil {
		return nil, err
	}

	// Identity is resolved only after the secret passed: an unauthenticated
	// caller learns nothing about token validity.
	uid, err := u.resolveIdentity(p)
	if err != nil {
		return nil, err
	}

	ref, err := tableref.Resolve(p.Floor, p.Table)
	if err != nil {
		return nil, errs.Mark(err, ErrBadTableReference)
	}

	return u.applyWithRetry(ctx, ref, floor.Identity(uid), cfg.WaitTimeMinutes)
}

func (u *checkInUseCaseImpl) resolveIdentity(p CheckStatusParams) (string, error) {
	if p.UID != "" {
		return p.UID, nil
	}
	if p.BearerToken != "" && u.tokens.Enabled() {
		uid, err := u.tokens.ResolveUID(p.BearerToken)
		if err != nil {
			return "", errs.Mark(err, ErrMissingIdentity)
		}
		return uid, nil
	}
	return "", ErrMissingIdentity
}

// applyWithRetry runs the read-decide-write cycle, re-reading on version
// conflicts so concurrent check-ins against the same floor serialize
// instead of silently overwriting each other.
func (u *checkInUseCaseImpl) applyWithRetry(ctx context.Context, ref tableref.Ref, uid floor.Identity, waitMinutes int) (*CheckResult, error) {
	base := 25 * time.Millisecond

	for attempt := 0; attempt <= maxSaveRetries; attempt++ {
		m, err := u.floors.FindByID(ctx, ref.Floor)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, ErrFloorNotFound)
			}
			return nil, errs.Mark(err, ErrStorageFailure)
		}

		decision, err := floor.Decide(m, ref.Marker, uid)
		if err != nil {
			return nil, errs.Mark(err, ErrTableNotFound)
		}

		if decision.Mutated {
			snap, err := u.floors.Save(ctx, m)
			if err != nil {
				if infra.IsKind(err, infra.KindVersionConflict) && attempt < maxSaveRetries {
					wait := calculateBackoff(attempt, base)
					u.logger.Warn("floor changed during check-in, retrying",
						"floor_id", ref.Floor,
						"table_id", ref.Marker,
						"attempt", attempt+1,
						"wait_ms", wait.Milliseconds())
					select {
					case <-ctx.Done():
						return nil, errs.Mark(ctx.Err(), ErrStorageFailure)
					case <-time.After(wait):
					}
					continue
				}
				u.logger.Error("failed to persist floor after check-in decision",
					"floor_id", ref.Floor,
					"table_id", ref.Marker,
					"uid", string(uid),
					"error", err.Error())
				return nil, errs.Mark(err, ErrStorageFailure)
			}
			u.publisher.Publish(ctx, snap)
		}

		u.logger.Info("check-in request settled",
			"floor_id", ref.Floor,
			"table_id", ref.Marker,
			"outcome", decision.Outcome.String())
		return resultFor(decision.Outcome, waitMinutes), nil
	}

	return nil, errs.Mark(errMaxRetriesExceeded, ErrStorageFailure)
}

func resultFor(outcome floor.Outcome, waitMinutes int) *CheckResult {
	switch outcome {
	case floor.OutcomeCheckIn, floor.OutcomeAlreadyHere:
		return &CheckResult{Outcome: outcome, CheckedIn: true, DelayMinutes: waitMinutes}
	case floor.OutcomeTableTaken:
		return &CheckResult{Outcome: outcome, CheckedIn: false, DelayMinutes: -1}
	default: // CheckOut, Conflict
		return &CheckResult{Outcome: outcome, CheckedIn: false, DelayMinutes: 0}
	}
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}
