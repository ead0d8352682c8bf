package repositories

import (
	"context"
	"time"

	"linkfolio/internal/database"
	"linkfolio/internal/logger"
	. "linkfolio/internal/models"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	SetSpotifyConnection(ctx context.Context, userID uuid.UUID, conn SpotifyConnection) error
	ClearSpotifyConnection(ctx context.Context, userID uuid.UUID) error
	SetDiscordConnection(ctx context.Context, userID uuid.UUID, discordUserID, discordUsername string) error
	FindExpiringSpotifyTokens(ctx context.Context, within time.Duration) ([]Profile, error)
}

type profileRepository struct {
	db  database.DB
	log logger.Logger
}

func NewProfileRepository(db database.DB) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: logger.New("profileRepository"),
	}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	log := r.log.Function("GetByUserID")

	var profile Profile
	if err := r.db.SQLWithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, log.Err("failed to get profile", err, "userID", userID)
	}

	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *Profile) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(profile).Error; err != nil {
		return log.Err("failed to create profile", err, "userID", profile.UserID)
	}

	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *Profile) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(profile).Error; err != nil {
		return log.Err("failed to update profile", err, "userID", profile.UserID)
	}

	return nil
}

// SetSpotifyConnection writes all five Spotify fields in a single update so the
// connection state is never partially populated.
func (r *profileRepository) SetSpotifyConnection(
	ctx context.Context,
	userID uuid.UUID,
	conn SpotifyConnection,
) error {
	log := r.log.Function("SetSpotifyConnection")

	updates := map[string]any{
		"spotify_connected":        true,
		"spotify_username":         conn.Username,
		"spotify_access_token":     conn.AccessToken,
		"spotify_refresh_token":    conn.RefreshToken,
		"spotify_token_expires_at": conn.ExpiresAt,
	}

	if err := r.db.SQLWithContext(ctx).Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error; err != nil {
		return log.Err("failed to set spotify connection", err, "userID", userID)
	}

	return nil
}

// ClearSpotifyConnection nulls all five Spotify fields atomically. Clearing an
// already-disconnected profile is a no-op and succeeds.
func (r *profileRepository) ClearSpotifyConnection(ctx context.Context, userID uuid.UUID) error {
	log := r.log.Function("ClearSpotifyConnection")

	updates := map[string]any{
		"spotify_connected":        false,
		"spotify_username":         nil,
		"spotify_access_token":     nil,
		"spotify_refresh_token":    nil,
		"spotify_token_expires_at": nil,
	}

	if err := r.db.SQLWithContext(ctx).Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error; err != nil {
		return log.Err("failed to clear spotify connection", err, "userID", userID)
	}

	return nil
}

func (r *profileRepository) SetDiscordConnection(
	ctx context.Context,
	userID uuid.UUID,
	discordUserID, discordUsername string,
) error {
	log := r.log.Function("SetDiscordConnection")

	updates := map[string]any{
		"discord_connected": true,
		"discord_user_id":   discordUserID,
		"discord_username":  discordUsername,
	}

	if err := r.db.SQLWithContext(ctx).Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error; err != nil {
		return log.Err("failed to set discord connection", err, "userID", userID)
	}

	return nil
}

// FindExpiringSpotifyTokens returns connected profiles whose access token
// expires within the given window, for the background refresh sweep.
func (r *profileRepository) FindExpiringSpotifyTokens(
	ctx context.Context,
	within time.Duration,
) ([]Profile, error) {
	log := r.log.Function("FindExpiringSpotifyTokens")

	var profiles []Profile
	deadline := time.Now().Add(within)

	if err := r.db.SQLWithContext(ctx).
		Where("spotify_connected = ?", true).
		Where("spotify_refresh_token IS NOT NULL").
		Where("spotify_token_expires_at < ?", deadline).
		Find(&profiles).Error; err != nil {
		return nil, log.Err("failed to find expiring spotify tokens", err)
	}

	return profiles, nil
}
