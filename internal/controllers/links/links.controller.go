package linksController

import (
	"context"
	"errors"
	"strings"

	"linkfolio/internal/logger"
	"linkfolio/internal/models"
	"linkfolio/internal/repositories"

	"github.com/google/uuid"
)

// LinksController handles the social link collection of a user.
type LinksController struct {
	linkRepo repositories.SocialLinkRepository
	log      logger.Logger
}

type LinksControllerInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.SocialLink, error)
	ListPublic(ctx context.Context, userID uuid.UUID) ([]models.SocialLink, error)
	Create(ctx context.Context, userID uuid.UUID, req models.CreateSocialLinkRequest) (*models.SocialLink, error)
	Update(ctx context.Context, userID, linkID uuid.UUID, req models.UpdateSocialLinkRequest) (*models.SocialLink, error)
	Delete(ctx context.Context, userID, linkID uuid.UUID) error
	Reorder(ctx context.Context, userID uuid.UUID, items []models.ReorderItem) error
}

func New(linkRepo repositories.SocialLinkRepository) LinksControllerInterface {
	return &LinksController{
		linkRepo: linkRepo,
		log:      logger.New("linksController"),
	}
}

func (c *LinksController) List(ctx context.Context, userID uuid.UUID) ([]models.SocialLink, error) {
	return c.linkRepo.ListByUser(ctx, userID)
}

// ListPublic returns a user's active links for their public page. The user_id
// owner key takes precedence; rows created before links were re-parented onto
// users carry only the legacy profile_id key, so an empty primary lookup
// falls back to it.
func (c *LinksController) ListPublic(ctx context.Context, userID uuid.UUID) ([]models.SocialLink, error) {
	links, err := c.linkRepo.ListPublicByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(links) > 0 {
		return links, nil
	}

	return c.linkRepo.ListPublicByLegacyOwner(ctx, userID)
}

func (c *LinksController) Create(
	ctx context.Context,
	userID uuid.UUID,
	req models.CreateSocialLinkRequest,
) (*models.SocialLink, error) {
	log := c.log.Function("Create")

	if strings.TrimSpace(req.Platform) == "" {
		return nil, errors.New("platform is required")
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, errors.New("url is required")
	}

	position, err := c.linkRepo.NextPosition(ctx, userID)
	if err != nil {
		return nil, log.Err("failed to determine position", err, "userID", userID)
	}

	link := &models.SocialLink{
		UserID:   userID,
		Platform: req.Platform,
		Label:    req.Label,
		URL:      req.URL,
		Position: position,
		IsActive: true,
	}

	if err := c.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

func (c *LinksController) Update(
	ctx context.Context,
	userID, linkID uuid.UUID,
	req models.UpdateSocialLinkRequest,
) (*models.SocialLink, error) {
	link, err := c.linkRepo.GetOwned(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	if req.Platform != nil {
		link.Platform = *req.Platform
	}
	if req.Label != nil {
		link.Label = *req.Label
	}
	if req.URL != nil {
		link.URL = *req.URL
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}

	if err := c.linkRepo.Update(ctx, userID, link); err != nil {
		return nil, err
	}

	return link, nil
}

func (c *LinksController) Delete(ctx context.Context, userID, linkID uuid.UUID) error {
	return c.linkRepo.Delete(ctx, userID, linkID)
}

// Reorder persists a client-submitted ordering. Items not owned by userID
// silently update zero rows; the call succeeds once all updates settle.
func (c *LinksController) Reorder(
	ctx context.Context,
	userID uuid.UUID,
	items []models.ReorderItem,
) error {
	if len(items) == 0 {
		return nil
	}

	return c.linkRepo.UpdatePositions(ctx, userID, items)
}
