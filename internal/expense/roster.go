package expense

import (
	"strings"

	"github.com/devanshg/splitmate/internal/apperr"
)

// Roster is a group's member list prepared for membership checks. Checks
// compare trimmed names by string equality; the original member order is
// irrelevant here and not retained.
type Roster struct {
	members map[string]struct{}
}

// NewRoster builds a roster from a group's member names.
func NewRoster(members []string) Roster {
	m := make(map[string]struct{}, len(members))
	for _, name := range members {
		m[strings.TrimSpace(name)] = struct{}{}
	}
	return Roster{members: m}
}

// Contains reports whether name, after trimming, is a group member.
func (r Roster) Contains(name string) bool {
	_, ok := r.members[strings.TrimSpace(name)]
	return ok
}

// Authorize confirms that the acting user and every name the request
// references belong to the group. The acting user failing the check is an
// authorization error; referenced names failing it are collected - all of
// them, not just the first - into a single validation error.
//
// Personal expenses have no group context and must not be passed here.
func Authorize(actorName string, r *Request, roster Roster) error {
	if !roster.Contains(actorName) {
		return apperr.Authorizationf("not a group member")
	}

	var invalid []string
	if strings.TrimSpace(r.PaidBy) != "" && !roster.Contains(r.PaidBy) {
		invalid = append(invalid, strings.TrimSpace(r.PaidBy))
	}
	for _, p := range r.Participants {
		if !roster.Contains(p) {
			invalid = append(invalid, strings.TrimSpace(p))
		}
	}
	for _, payer := range r.Payers {
		if !roster.Contains(payer.Name) {
			invalid = append(invalid, strings.TrimSpace(payer.Name))
		}
	}
	for _, split := range r.Splits {
		if !roster.Contains(split.Participant) {
			invalid = append(invalid, strings.TrimSpace(split.Participant))
		}
	}

	if len(invalid) > 0 {
		return apperr.Validationf("invalid members: %s", strings.Join(invalid, ", "))
	}
	return nil
}
