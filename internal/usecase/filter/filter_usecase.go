package filter

import (
	"context"
	"fmt"

	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/repository"
)

type FilterUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewFilterUseCase(profileRepo repository.ProfileRepository) *FilterUseCase {
	return &FilterUseCase{profileRepo: profileRepo}
}

// FilterRequest carries the browse form. Every field is optional;
// criteria that are present narrow the listing conjunctively.
type FilterRequest struct {
	Genders []int  `form:"genders" binding:"omitempty"`
	Wishes  []int  `form:"wishes" binding:"omitempty"`
	MinAge  *int   `form:"min_age" binding:"omitempty,min=1,max=100"`
	MaxAge  *int   `form:"max_age" binding:"omitempty,min=1,max=100"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=username age"`
	SortDir string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// Search returns profiles narrowed by req, each with its wishes attached.
// Ordering applies only when both sort field and direction are supplied;
// otherwise the default order is kept.
func (uc *FilterUseCase) Search(ctx context.Context, req *FilterRequest) ([]*domain.ProfileView, error) {
	f := domain.ProfileFilter{
		GenderIDs: req.Genders,
		WishIDs:   req.Wishes,
		MinAge:    ageBound(req.MinAge),
		MaxAge:    ageBound(req.MaxAge),
		SortField: req.SortBy,
		SortDir:   req.SortDir,
	}

	views, err := uc.profileRepo.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}

	for _, view := range views {
		wishes, err := uc.profileRepo.GetWishes(ctx, view.ID)
		if err != nil {
			return nil, fmt.Errorf("load wishes: %w", err)
		}
		view.Wishes = wishes
	}
	return views, nil
}

// ageBound drops empty age inputs: blank form fields bind as zero,
// which is outside the valid age range and means "no bound".
func ageBound(v *int) *int {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}
