package jobs

import (
	"context"
	"time"

	"linkfolio/internal/logger"
	"linkfolio/internal/repositories"
	"linkfolio/internal/services"
)

// Window before expiry in which a token is considered due for refresh.
const refreshWindow = 30 * time.Minute

// SpotifyTokenRefreshJob sweeps connected profiles and refreshes access
// tokens that are close to expiry. One profile failing to refresh does not
// stop the sweep.
type SpotifyTokenRefreshJob struct {
	profileRepo    repositories.ProfileRepository
	spotifyService *services.SpotifyService
	schedule       services.Schedule
	log            logger.Logger
}

func NewSpotifyTokenRefreshJob(
	profileRepo repositories.ProfileRepository,
	spotifyService *services.SpotifyService,
	schedule services.Schedule,
) *SpotifyTokenRefreshJob {
	return &SpotifyTokenRefreshJob{
		profileRepo:    profileRepo,
		spotifyService: spotifyService,
		schedule:       schedule,
		log:            logger.New("jobs").File("spotifyTokenRefresh"),
	}
}

func (j *SpotifyTokenRefreshJob) Name() string {
	return "spotify-token-refresh"
}

func (j *SpotifyTokenRefreshJob) Schedule() services.Schedule {
	return j.schedule
}

func (j *SpotifyTokenRefreshJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	profiles, err := j.profileRepo.FindExpiringSpotifyTokens(ctx, refreshWindow)
	if err != nil {
		return log.Err("failed to find expiring tokens", err)
	}

	if len(profiles) == 0 {
		return nil
	}

	log.Info("refreshing spotify tokens", "count", len(profiles))

	refreshed := 0
	for _, profile := range profiles {
		if profile.SpotifyRefreshToken == nil {
			continue
		}

		token, err := j.spotifyService.Refresh(ctx, *profile.SpotifyRefreshToken)
		if err != nil {
			log.Er("failed to refresh token", err, "userID", profile.UserID)
			continue
		}

		username := ""
		if profile.SpotifyUsername != nil {
			username = *profile.SpotifyUsername
		}

		conn := services.ToConnection(token, username, *profile.SpotifyRefreshToken)
		if err := j.profileRepo.SetSpotifyConnection(ctx, profile.UserID, conn); err != nil {
			log.Er("failed to store refreshed token", err, "userID", profile.UserID)
			continue
		}

		refreshed++
	}

	log.Info("spotify token refresh sweep complete",
		"refreshed", refreshed,
		"total", len(profiles),
	)
	return nil
}
