package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fanhub/fanhub-server/internal/apierr"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// Fandom exposes the top-level communities.
type Fandom struct {
	fandoms  model.FandomStore
	resolver *Permission
	logger   *logger.Logger
}

func NewFandom(fandoms model.FandomStore, resolver *Permission, logger *logger.Logger) *Fandom {
	return &Fandom{fandoms: fandoms, resolver: resolver, logger: logger}
}

// GetByRef resolves a path reference: numeric id or u/<url>. "current" has
// no meaning for fandoms.
func (f *Fandom) GetByRef(ctx context.Context, ref model.Ref) (model.Fandom, error) {
	var (
		fandom model.Fandom
		err    error
	)

	switch ref.Kind {
	case model.RefSlug:
		fandom, err = f.fandoms.GetByURL(ctx, ref.Slug)
	case model.RefID:
		fandom, err = f.fandoms.GetByID(ctx, ref.ID)
	default:
		return model.Fandom{}, apierr.NewObjectNotFound()
	}

	if errors.Is(err, model.ErrNotFound) {
		return model.Fandom{}, apierr.NewObjectNotFound()
	}
	if err != nil {
		return model.Fandom{}, fmt.Errorf("failed to resolve fandom: %w", err)
	}
	return fandom, nil
}

func (f *Fandom) List(ctx context.Context) ([]model.Fandom, error) {
	return f.fandoms.List(ctx)
}

// Create opens a new fandom. Admin only.
func (f *Fandom) Create(ctx context.Context, principal int64, url, title, description, avatar string) (int64, error) {
	admin, err := f.resolver.IsAdmin(ctx, principal)
	if err != nil {
		return 0, err
	}
	if !admin {
		return 0, apierr.NewForbidden()
	}

	id, err := f.fandoms.Create(ctx, principal, url, title, description, avatar)
	if errors.Is(err, model.ErrConflict) {
		return 0, apierr.NewFandomURLAlreadyTaken()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create fandom: %w", err)
	}

	f.logger.Info("Fandom service: fandom created",
		"fandom_id", id,
		"url", url,
		"created_by", principal)

	return id, nil
}

// Update edits a fandom. Requires the edit flag at fandom scope or admin.
func (f *Fandom) Update(ctx context.Context, principal int64, fandom model.Fandom, title, description, avatar string) error {
	ok, err := f.resolver.CanFandom(ctx, principal, fandom.ID, model.FlagEditFandom)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NewForbidden()
	}

	if err := f.fandoms.Update(ctx, principal, fandom.ID, title, description, avatar); err != nil {
		return fmt.Errorf("failed to update fandom: %w", err)
	}

	f.logger.Info("Fandom service: fandom updated",
		"fandom_id", fandom.ID,
		"edited_by", principal)

	return nil
}
