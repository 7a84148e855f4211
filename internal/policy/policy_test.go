package policy

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

func completeProfile(role models.Role) *models.User {
	return &models.User{
		ID:          1,
		Username:    "ayesha",
		Role:        role,
		City:        "lahore",
		PhoneNumber: "03001234567",
		Bio:         "Community organizer",
	}
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role     models.Role
		protests bool
		posts    bool
		manage   bool
	}{
		{models.RoleUser, false, true, false},
		{models.RoleOrganizer, true, true, false},
		{models.RoleAdmin, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.protests, CanCreateProtests(tt.role))
			assert.Equal(t, tt.posts, CanCreateBlogPosts(tt.role))
			assert.Equal(t, tt.manage, CanManageContent(tt.role))
			assert.Equal(t, tt.manage, CanModerate(tt.role))
		})
	}
}

func TestRoleCapabilities_PanicOnInvalidRole(t *testing.T) {
	assert.Panics(t, func() { CanCreateProtests(models.Role(0)) })
}

func TestAuthorizeProtestCreation(t *testing.T) {
	t.Run("regular user rejected even with complete profile", func(t *testing.T) {
		err := AuthorizeProtestCreation(completeProfile(models.RoleUser))
		assert.True(t, errors.Is(err, apperr.ErrForbidden))
	})

	t.Run("regular user with empty profile still gets forbidden", func(t *testing.T) {
		err := AuthorizeProtestCreation(&models.User{Role: models.RoleUser})
		assert.True(t, errors.Is(err, apperr.ErrForbidden))
	})

	t.Run("organizer with complete profile allowed", func(t *testing.T) {
		assert.NoError(t, AuthorizeProtestCreation(completeProfile(models.RoleOrganizer)))
	})

	t.Run("admin with complete profile allowed", func(t *testing.T) {
		assert.NoError(t, AuthorizeProtestCreation(completeProfile(models.RoleAdmin)))
	})

	t.Run("missing fields are named individually", func(t *testing.T) {
		u := completeProfile(models.RoleOrganizer)
		u.PhoneNumber = ""
		u.Bio = "   "

		err := AuthorizeProtestCreation(u)
		var verr *apperr.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Len(t, verr.Fields, 2)
		assert.Contains(t, verr.Fields, "phone_number")
		assert.Contains(t, verr.Fields, "bio")
	})
}

func TestMissingProfileFields_Order(t *testing.T) {
	assert.Equal(t, []string{"city", "phone_number", "bio"}, MissingProfileFields(&models.User{}))
	assert.Empty(t, MissingProfileFields(completeProfile(models.RoleUser)))
}

func TestValidateProtestWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		fields []string
	}{
		{"valid future window", now.Add(48 * time.Hour), now.Add(72 * time.Hour), nil},
		{"start equal to now", now, now.Add(time.Hour), []string{"start_datetime"}},
		{"start in the past", now.Add(-time.Hour), now.Add(time.Hour), []string{"start_datetime"}},
		{"end equal to start", now.Add(time.Hour), now.Add(time.Hour), []string{"end_datetime"}},
		{"end before start", now.Add(2 * time.Hour), now.Add(time.Hour), []string{"end_datetime"}},
		{"both invalid", now.Add(-2 * time.Hour), now.Add(-3 * time.Hour), []string{"start_datetime", "end_datetime"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProtestWindow(tt.start, tt.end, now)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *apperr.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Len(t, verr.Fields, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestTemporalState(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	assert.Equal(t, Upcoming, TemporalState(start, end, start.Add(-time.Second)))
	assert.Equal(t, Ongoing, TemporalState(start, end, start))
	assert.Equal(t, Ongoing, TemporalState(start, end, start.Add(time.Hour)))
	assert.Equal(t, Ongoing, TemporalState(start, end, end))
	assert.Equal(t, Completed, TemporalState(start, end, end.Add(time.Second)))
}

func TestTemporalState_IndependentOfModerationStatus(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	p := &models.Protest{
		Status:        models.StatusRejected,
		StartDatetime: start,
		EndDatetime:   start.Add(time.Hour),
	}
	now := start.Add(30 * time.Minute)

	assert.True(t, IsOngoing(p, now))
	assert.False(t, IsUpcoming(p, now))
	assert.False(t, IsCompleted(p, now))
}

func TestCanPostProtestUpdate(t *testing.T) {
	p := &models.Protest{ID: 3, OrganizerID: 10}

	assert.True(t, CanPostProtestUpdate(&models.User{ID: 10, Role: models.RoleOrganizer}, p))
	assert.True(t, CanPostProtestUpdate(&models.User{ID: 99, Role: models.RoleAdmin}, p))
	assert.False(t, CanPostProtestUpdate(&models.User{ID: 11, Role: models.RoleOrganizer}, p))
	assert.False(t, CanPostProtestUpdate(&models.User{ID: 12, Role: models.RoleUser}, p))
}

func TestValidModerationTarget(t *testing.T) {
	assert.True(t, ValidModerationTarget(models.StatusApproved))
	assert.True(t, ValidModerationTarget(models.StatusRejected))
	assert.False(t, ValidModerationTarget(models.StatusPending))
	assert.False(t, ValidModerationTarget("archived"))
}
