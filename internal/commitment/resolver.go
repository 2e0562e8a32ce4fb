package commitment

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// EffectiveDeadline returns the latest binding date across the participant's
// own date condition and the resolved deadlines of everyone they transitively
// depend on. It returns nil when no date applies.
func EffectiveDeadline(p *Participant, all []*Participant) *time.Time {
	if p == nil {
		return nil
	}
	d := indexSnapshot(all).effectiveDeadline(p, map[uuid.UUID]struct{}{})
	if d == nil {
		return nil
	}
	out := *d
	return &out
}

// effectiveDeadline walks one dependency path. path holds the participants
// already on the current path; it is cloned before being extended so sibling
// branches never see each other's visits.
func (s snapshot) effectiveDeadline(p *Participant, path map[uuid.UUID]struct{}) *time.Time {
	if p.EffectiveConditionalType() == ConditionalNone {
		return nil
	}

	var latest *time.Time
	consider := func(d *time.Time) {
		if d != nil && (latest == nil || d.After(*latest)) {
			latest = d
		}
	}

	consider(p.ConditionalDate)

	if len(p.ConditionalUserIDs) == 0 {
		return latest
	}

	next := maps.Clone(path)
	next[p.UserID] = struct{}{}

	for _, id := range p.ConditionalUserIDs {
		if _, seen := next[id]; seen {
			continue
		}
		dep, ok := s[id]
		if !ok {
			continue
		}
		consider(s.effectiveDeadline(dep, next))
	}

	return latest
}

// ConditionsMet reports whether a conditional participant's stated conditions
// hold right now.
func ConditionsMet(p *Participant, all []*Participant) bool {
	return ConditionsMetAt(p, all, time.Now())
}

// ConditionsMetAt is ConditionsMet evaluated at the given instant.
//
// Only the immediate status of referenced users is inspected: a dependency
// that is itself still conditional on someone else counts as met as soon as
// it shows confirmed.
func ConditionsMetAt(p *Participant, all []*Participant, now time.Time) bool {
	kind := p.EffectiveConditionalType()
	if kind == ConditionalNone {
		return false
	}

	dateMet := p.ConditionalDate == nil || !now.Before(*p.ConditionalDate)

	usersMet := true
	if len(p.ConditionalUserIDs) > 0 {
		idx := indexSnapshot(all)
		for _, id := range p.ConditionalUserIDs {
			dep, ok := idx[id]
			if !ok || dep.Status != StatusConfirmed {
				usersMet = false
				break
			}
		}
	}

	switch kind {
	case ConditionalBoth:
		return dateMet && usersMet
	case ConditionalDate:
		return dateMet
	case ConditionalUsers:
		return usersMet
	default:
		return false
	}
}
