// Package policy holds the authorization and time window rules. Every
// function is pure: the caller passes the user, the entity and the clock.
package policy

import (
	"fmt"
	"strings"
	"time"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

func CanCreateProtests(r models.Role) bool {
	switch r {
	case models.RoleOrganizer, models.RoleAdmin:
		return true
	case models.RoleUser:
		return false
	default:
		panic(fmt.Sprintf("policy: unhandled role %v", r))
	}
}

func CanCreateBlogPosts(r models.Role) bool {
	switch r {
	case models.RoleUser, models.RoleOrganizer, models.RoleAdmin:
		return true
	default:
		panic(fmt.Sprintf("policy: unhandled role %v", r))
	}
}

func CanManageContent(r models.Role) bool {
	switch r {
	case models.RoleAdmin:
		return true
	case models.RoleUser, models.RoleOrganizer:
		return false
	default:
		panic(fmt.Sprintf("policy: unhandled role %v", r))
	}
}

// CanModerate reports whether the role may move a protest between statuses.
func CanModerate(r models.Role) bool {
	return CanManageContent(r)
}

// MissingProfileFields returns, in a fixed order, the profile fields that
// must be filled in before a protest can be created.
func MissingProfileFields(u *models.User) []string {
	var missing []string
	if strings.TrimSpace(string(u.City)) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(u.PhoneNumber) == "" {
		missing = append(missing, "phone_number")
	}
	if strings.TrimSpace(u.Bio) == "" {
		missing = append(missing, "bio")
	}
	return missing
}

// AuthorizeProtestCreation applies the role gate first and the profile
// completeness gate second.
func AuthorizeProtestCreation(u *models.User) error {
	if !CanCreateProtests(u.Role) {
		return apperr.Forbidden("only organizers can create protests")
	}
	missing := MissingProfileFields(u)
	if len(missing) == 0 {
		return nil
	}
	v := apperr.NewValidationError()
	for _, field := range missing {
		v.Add(field, "complete this profile field before creating a protest")
	}
	return v
}

// ValidateProtestWindow checks the window against the server clock.
func ValidateProtestWindow(start, end, now time.Time) error {
	v := apperr.NewValidationError()
	if !start.After(now) {
		v.Add("start_datetime", "start time must be in the future")
	}
	if !end.After(start) {
		v.Add("end_datetime", "end time must be after start time")
	}
	return v.OrNil()
}

// CanPostProtestUpdate allows the protest organizer and admins.
func CanPostProtestUpdate(u *models.User, p *models.Protest) bool {
	return u.ID == p.OrganizerID || CanManageContent(u.Role)
}

// ValidModerationTarget lists the statuses an admin may set.
func ValidModerationTarget(s models.ProtestStatus) bool {
	switch s {
	case models.StatusApproved, models.StatusRejected, models.StatusCancelled,
		models.StatusUpcoming, models.StatusOngoing, models.StatusCompleted:
		return true
	case models.StatusPending:
		return false
	default:
		return false
	}
}

// Temporal is the time derived display state of a protest.
type Temporal int

const (
	Upcoming Temporal = iota
	Ongoing
	Completed
)

func (t Temporal) String() string {
	switch t {
	case Upcoming:
		return "upcoming"
	case Ongoing:
		return "ongoing"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// TemporalState compares now with the window. Both bounds count as ongoing.
func TemporalState(start, end, now time.Time) Temporal {
	switch {
	case start.After(now):
		return Upcoming
	case end.Before(now):
		return Completed
	default:
		return Ongoing
	}
}

func IsUpcoming(p *models.Protest, now time.Time) bool {
	return TemporalState(p.StartDatetime, p.EndDatetime, now) == Upcoming
}

func IsOngoing(p *models.Protest, now time.Time) bool {
	return TemporalState(p.StartDatetime, p.EndDatetime, now) == Ongoing
}

func IsCompleted(p *models.Protest, now time.Time) bool {
	return TemporalState(p.StartDatetime, p.EndDatetime, now) == Completed
}
