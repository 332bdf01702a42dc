// Package earlybird computes early-bird enrollment, the qualification
// window, and the revenue-share percentage a creator earns. Everything here
// is a pure function of ledger rows and a supplied clock so the engine is
// the single source of truth for share math.
package earlybird

import (
	"math"
	"time"
)

const (
	// EarlyBirdLimit is the number of registrations that receive the
	// early-bird track (80% tier on qualification).
	EarlyBirdLimit = 500

	// BonusLimit is the number of registrations that receive the lifetime
	// bonus tier (90% on qualification).
	BonusLimit = 100

	// WindowDays is the length of the qualification window in days,
	// anchored at the creator's registration time.
	WindowDays = 10

	// BonusPercent is the fixed bonus value stored on bonus-eligible
	// creators at registration.
	BonusPercent = 90.0
)

// Revenue-share tiers.
const (
	BaseShare      int64 = 70
	EarlyBirdShare int64 = 80
	BonusShare     int64 = 90
)

// Condition thresholds a creator must reach inside the window.
const (
	MinPromoPosts    = 1
	MinFreeVideos    = 3
	MinPremiumVideos = 3
)

// Tier labels reported by Evaluate.
const (
	TierStandard  = "standard"
	TierPending   = "pending"
	TierQualified = "qualified"
	TierLapsed    = "lapsed"
)

// Enrollment is the early-bird classification fixed at registration time.
type Enrollment struct {
	IsEarlyBird   bool
	BonusEligible bool
}

// ClassifyEnrollment classifies a registration by its zero-based index, the
// count of creators already registered at insertion time. The result is
// computed once and never revisited.
func ClassifyEnrollment(index int64) Enrollment {
	return Enrollment{
		IsEarlyBird:   index < EarlyBirdLimit,
		BonusEligible: index < BonusLimit,
	}
}

// Window describes where a creator stands inside the qualification window.
type Window struct {
	DaysElapsed    float64 `json:"daysElapsed"`
	DaysRemaining  int     `json:"daysRemaining"`
	DeadlinePassed bool    `json:"deadlinePassed"`
}

// EvaluateWindow computes the window state at a given instant. Days are
// 24-hour units; at exactly WindowDays elapsed the deadline has not passed
// yet, though zero days remain.
func EvaluateWindow(joinedAt, now time.Time) Window {
	daysElapsed := now.Sub(joinedAt).Hours() / 24

	daysRemaining := WindowDays - int(math.Floor(daysElapsed))
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return Window{
		DaysElapsed:    daysElapsed,
		DaysRemaining:  daysRemaining,
		DeadlinePassed: daysElapsed > WindowDays,
	}
}

// ConditionsSatisfied reports whether the reported counters reach every
// threshold. Callers latch the result; this function never reads the latch.
func ConditionsSatisfied(promoPost, freeVideos, premiumVideos int) bool {
	return promoPost >= MinPromoPosts &&
		freeVideos >= MinFreeVideos &&
		premiumVideos >= MinPremiumVideos
}

// SharePercent returns the revenue-share percentage for a creator.
// conditionsMet is the latched flag from the ledger, not a live evaluation.
func SharePercent(isEarlyBird, bonusEligible, conditionsMet bool) int64 {
	if !isEarlyBird || !conditionsMet {
		return BaseShare
	}
	if bonusEligible {
		return BonusShare
	}
	return EarlyBirdShare
}

// Status is a full policy snapshot for one creator at one instant.
type Status struct {
	Tier         string `json:"tier"`
	SharePercent int64  `json:"sharePercent"`
	Window       Window `json:"window"`
}

// Evaluate classifies a creator into a tier and computes their current share.
// Non-early-bird creators are terminal at the base share and carry an empty
// window.
func Evaluate(isEarlyBird, bonusEligible, conditionsMet bool, joinedAt, now time.Time) Status {
	if !isEarlyBird {
		return Status{
			Tier:         TierStandard,
			SharePercent: BaseShare,
		}
	}

	window := EvaluateWindow(joinedAt, now)
	status := Status{
		SharePercent: SharePercent(isEarlyBird, bonusEligible, conditionsMet),
		Window:       window,
	}

	switch {
	case conditionsMet:
		status.Tier = TierQualified
	case window.DeadlinePassed:
		status.Tier = TierLapsed
	default:
		status.Tier = TierPending
	}

	return status
}
