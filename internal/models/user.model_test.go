package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUser_IsAdmin(t *testing.T) {
	testCases := []struct {
		name     string
		profile  *Profile
		expected bool
	}{
		{name: "no profile", profile: nil, expected: false},
		{name: "user role", profile: &Profile{Role: RoleUser}, expected: false},
		{name: "moderator role", profile: &Profile{Role: RoleModerator}, expected: false},
		{name: "admin role", profile: &Profile{Role: RoleAdmin}, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user := User{Profile: tc.profile}
			assert.Equal(t, tc.expected, user.IsAdmin())
		})
	}
}

func TestUser_ToProfile(t *testing.T) {
	id := uuid.New()
	spotifyName := "spotify-ada"

	t.Run("without profile defaults to user role", func(t *testing.T) {
		user := User{
			BaseUUIDModel: BaseUUIDModel{ID: id},
			Email:         "ada@example.com",
			Username:      "ada",
			DisplayName:   "Ada",
			IsActive:      true,
		}

		profile := user.ToProfile()
		assert.Equal(t, id.String(), profile.ID)
		assert.Equal(t, RoleUser, profile.Role)
		assert.Nil(t, profile.SpotifyName)
	})

	t.Run("spotify username only surfaces while connected", func(t *testing.T) {
		user := User{
			BaseUUIDModel: BaseUUIDModel{ID: id},
			Profile: &Profile{
				Role:             RoleAdmin,
				Bio:              "bio",
				SpotifyConnected: false,
				SpotifyUsername:  &spotifyName,
			},
		}

		profile := user.ToProfile()
		assert.Equal(t, RoleAdmin, profile.Role)
		assert.Nil(t, profile.SpotifyName)

		user.Profile.SpotifyConnected = true
		profile = user.ToProfile()
		assert.Equal(t, &spotifyName, profile.SpotifyName)
	})
}

func TestUser_BeforeCreate(t *testing.T) {
	user := User{
		Email:    "  Ada@Example.COM ",
		Username: "ada",
	}

	assert.NoError(t, user.BeforeCreate(nil))
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "ada", user.DisplayName, "display name falls back to username")
}
