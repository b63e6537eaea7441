package profile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	wishRepo    repository.WishRepository
	genderRepo  repository.LookupRepository
	pronounRepo repository.LookupRepository
	tx          repository.Transactor
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	wishRepo repository.WishRepository,
	genderRepo repository.LookupRepository,
	pronounRepo repository.LookupRepository,
	tx repository.Transactor,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		wishRepo:    wishRepo,
		genderRepo:  genderRepo,
		pronounRepo: pronounRepo,
		tx:          tx,
	}
}

// EditProfileRequest carries the profile edit form. Gender and Pronoun
// accept either an existing row's ID or free text naming a new row.
type EditProfileRequest struct {
	Age     int    `form:"age" binding:"required,min=1,max=100"`
	Gender  string `form:"gender"`
	Pronoun string `form:"pronoun"`
	WishIDs []int  `form:"wishes" binding:"omitempty"`
}

// FormOptions are the select/datalist choices offered by the registration
// and edit forms.
type FormOptions struct {
	Genders  []domain.LookupRow
	Pronouns []domain.LookupRow
	Wishes   []domain.Wish
}

func (uc *ProfileUseCase) FormOptions(ctx context.Context) (*FormOptions, error) {
	genders, err := uc.genderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genders: %w", err)
	}
	pronouns, err := uc.pronounRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pronouns: %w", err)
	}
	wishes, err := uc.wishRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wishes: %w", err)
	}
	return &FormOptions{Genders: genders, Pronouns: pronouns, Wishes: wishes}, nil
}

// GetOwnProfile returns the user's profile and attached wishes for the
// edit form.
func (uc *ProfileUseCase) GetOwnProfile(ctx context.Context, userID int) (*domain.Profile, []domain.Wish, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	wishes, err := uc.profileRepo.GetWishes(ctx, profile.ID)
	if err != nil {
		return nil, nil, err
	}
	return profile, wishes, nil
}

// ViewByUsername returns the profile page data for the given username.
func (uc *ProfileUseCase) ViewByUsername(ctx context.Context, username string) (*domain.ProfileView, error) {
	view, err := uc.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	wishes, err := uc.profileRepo.GetWishes(ctx, view.ID)
	if err != nil {
		return nil, err
	}
	view.Wishes = wishes
	return view, nil
}

// UpdateProfile applies the edit form to the user's own profile. Free-text
// gender/pronoun values are resolved to lookup rows first, creating rows as
// needed; those rows persist even when the profile write itself fails. The
// profile update and wish attachment run as one transaction. A nil
// newPicture keeps the previously uploaded picture.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID int, req *EditProfileRequest, newPicture *string) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	genderID, err := resolveOrCreate(ctx, uc.genderRepo, req.Gender)
	if err != nil {
		return nil, &domain.FieldError{Field: "gender", Err: err}
	}
	pronounID, err := resolveOrCreate(ctx, uc.pronounRepo, req.Pronoun)
	if err != nil {
		return nil, &domain.FieldError{Field: "pronoun", Err: err}
	}
	if len(req.WishIDs) > 0 {
		if _, err := uc.wishRepo.GetByIDs(ctx, req.WishIDs); err != nil {
			return nil, &domain.FieldError{Field: "wishes", Err: err}
		}
	}

	profile.Age = req.Age
	profile.GenderID = genderID
	profile.PronounID = pronounID
	if newPicture != nil {
		profile.PicturePath = newPicture
	}

	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.profileRepo.Update(ctx, profile); err != nil {
			return err
		}
		return uc.profileRepo.SetWishes(ctx, profile.ID, req.WishIDs)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// resolveOrCreate turns a submitted lookup value into a row reference. A
// numeric value must name an existing row; anything else is free text that
// creates one. When two requests race to create the same name, the loser
// adopts the row the winner inserted.
func resolveOrCreate(ctx context.Context, repo repository.LookupRepository, value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if id, err := strconv.Atoi(value); err == nil {
		row, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &row.ID, nil
	}

	row, err := repo.Create(ctx, value)
	if errors.Is(err, domain.ErrDuplicateName) {
		row, err = repo.GetByName(ctx, value)
	}
	if err != nil {
		return nil, err
	}
	return &row.ID, nil
}
