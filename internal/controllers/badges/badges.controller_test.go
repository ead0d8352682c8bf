package badgesController

import (
	"context"
	"testing"

	"linkfolio/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBadgeRepo struct {
	badges     map[string]*models.Badge
	userBadges []models.UserBadge
	assigned   []struct {
		userID     uuid.UUID
		badgeID    int
		assignedBy *uuid.UUID
	}
	revoked []int
}

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{badges: make(map[string]*models.Badge)}
}

func (f *fakeBadgeRepo) GetByName(_ context.Context, name string) (*models.Badge, error) {
	if badge, ok := f.badges[name]; ok {
		return badge, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBadgeRepo) ListForUser(_ context.Context, _ uuid.UUID) ([]models.UserBadge, error) {
	return f.userBadges, nil
}

func (f *fakeBadgeRepo) Assign(_ context.Context, userID uuid.UUID, badgeID int, assignedBy *uuid.UUID) error {
	f.assigned = append(f.assigned, struct {
		userID     uuid.UUID
		badgeID    int
		assignedBy *uuid.UUID
	}{userID, badgeID, assignedBy})
	return nil
}

func (f *fakeBadgeRepo) Revoke(_ context.Context, _ uuid.UUID, badgeID int) error {
	f.revoked = append(f.revoked, badgeID)
	return nil
}

func (f *fakeBadgeRepo) HasBadge(_ context.Context, _ uuid.UUID, _ int) (bool, error) {
	return false, nil
}

type fakeAdminLogRepo struct {
	entries []models.AdminLog
	details []map[string]any
}

func (f *fakeAdminLogRepo) Append(_ context.Context, adminID uuid.UUID, action, targetType, targetID string, details map[string]any) error {
	f.entries = append(f.entries, models.AdminLog{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	})
	f.details = append(f.details, details)
	return nil
}

func (f *fakeAdminLogRepo) ListRecent(_ context.Context, _ int) ([]models.AdminLog, error) {
	return f.entries, nil
}

func testBadge(id int, name, icon string, active bool) models.Badge {
	return models.Badge{
		BaseModel:   models.BaseModel{ID: id},
		Name:        name,
		DisplayName: name,
		Icon:        icon,
		IsActive:    active,
	}
}

func TestListForUser(t *testing.T) {
	repo := newFakeBadgeRepo()
	repo.userBadges = []models.UserBadge{
		{Badge: testBadge(1, "founder", "", true)},
		{Badge: testBadge(2, "verified", "custom-icon", true)},
		{Badge: testBadge(3, "retired", "x", false)},
	}
	controller := New(repo, &fakeAdminLogRepo{})

	displays, err := controller.ListForUser(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, displays, 2, "inactive badges are not displayed")

	// Empty stored icon falls back to the name-based lookup
	assert.Equal(t, "crown", displays[0].Icon)
	assert.Equal(t, "custom-icon", displays[1].Icon)
}

func TestAssign(t *testing.T) {
	repo := newFakeBadgeRepo()
	badge := testBadge(5, "developer", "", true)
	repo.badges["developer"] = &badge
	logs := &fakeAdminLogRepo{}
	controller := New(repo, logs)

	admin := &models.User{BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()}}
	target := uuid.New()

	err := controller.Assign(context.Background(), admin, models.AssignBadgeRequest{
		UserID:    target,
		BadgeName: "developer",
	})
	require.NoError(t, err)

	require.Len(t, repo.assigned, 1)
	assert.Equal(t, target, repo.assigned[0].userID)
	assert.Equal(t, 5, repo.assigned[0].badgeID)
	require.NotNil(t, repo.assigned[0].assignedBy)
	assert.Equal(t, admin.ID, *repo.assigned[0].assignedBy)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, "badge_assigned", logs.entries[0].Action)
	assert.Equal(t, target.String(), logs.entries[0].TargetID)
	assert.Equal(t, "developer", logs.details[0]["badge"])
}

func TestAssign_UnknownBadge(t *testing.T) {
	controller := New(newFakeBadgeRepo(), &fakeAdminLogRepo{})

	admin := &models.User{BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()}}
	err := controller.Assign(context.Background(), admin, models.AssignBadgeRequest{
		UserID:    uuid.New(),
		BadgeName: "nope",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRevoke(t *testing.T) {
	repo := newFakeBadgeRepo()
	badge := testBadge(2, "verified", "", true)
	repo.badges["verified"] = &badge
	logs := &fakeAdminLogRepo{}
	controller := New(repo, logs)

	admin := &models.User{BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()}}
	err := controller.Revoke(context.Background(), admin, models.AssignBadgeRequest{
		UserID:    uuid.New(),
		BadgeName: "verified",
	})
	require.NoError(t, err)

	assert.Equal(t, []int{2}, repo.revoked)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, "badge_revoked", logs.entries[0].Action)
}
