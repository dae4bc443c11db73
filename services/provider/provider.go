package provider

import (
	"time"

	providerRepo "glowbook/database/repository/provider"
	userRepo "glowbook/database/repository/user"
	"glowbook/models"
	"glowbook/services/auth"
	"glowbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Registration carries everything a service-provider signup submits.
type Registration struct {
	Email           string
	Password        string
	Name            string
	DateOfBirth     *time.Time
	Phone           string
	ProfileImage    string
	Ethnicity       string
	HairColor       string
	ExperienceYears *int
	Certifications  string
	Specialties     string
	Address         string
}

// ProfileUpdate enumerates every mutable provider field, account and
// profile alike. Nil means "leave unchanged".
type ProfileUpdate struct {
	Email           *string    `json:"email"`
	Password        *string    `json:"password"`
	Name            *string    `json:"name"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	Phone           *string    `json:"phone"`
	ProfileImage    *string    `json:"profile_image"`
	Status          *string    `json:"status"`
	Ethnicity       *string    `json:"ethnicity"`
	HairColor       *string    `json:"hair_color"`
	ExperienceYears *int       `json:"experience_years"`
	Certifications  *string    `json:"certifications"`
	Specialties     *string    `json:"specialties"`
	Address         *string    `json:"address"`
}

// Account bundles a provider profile with its owning user for responses.
type Account struct {
	User    models.User            `json:"user"`
	Profile models.ServiceProvider `json:"profile"`
}

// ProviderService manages service-provider accounts and profiles.
type ProviderService interface {
	Register(reg Registration) (*Account, error)
	Get(id string) (*Account, error)
	List() ([]Account, error)
	Update(id string, update ProfileUpdate) (*Account, error)
	Delete(id string) error
}

// DefaultProviderService is the production implementation of ProviderService.
type DefaultProviderService struct {
	Repo     providerRepo.ProviderRepository
	UserRepo userRepo.UserRepository
}

// Register creates the user account and provider profile in one transaction.
func (s *DefaultProviderService) Register(reg Registration) (*Account, error) {
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		return nil, utils.NewError(utils.KindInvalidInput, "Email, password, and name are required.")
	}

	existing, err := s.UserRepo.GetByEmail(reg.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewError(utils.KindConflict, "User with this email already exists.")
	}

	hashed, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, utils.NewError(utils.KindInvalidInput, "Registration failed, please try again.")
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Email:        reg.Email,
		PasswordHash: hashed,
		Name:         reg.Name,
		Role:         models.RoleServiceProvider,
		DateOfBirth:  reg.DateOfBirth,
		Phone:        reg.Phone,
		ProfileColor: utils.GenerateProfileColor(),
		ProfileImage: reg.ProfileImage,
		Status:       "active",
	}
	prof := &models.ServiceProvider{
		ID:              uuid.New().String(),
		UserID:          usr.ID,
		Ethnicity:       reg.Ethnicity,
		HairColor:       reg.HairColor,
		ExperienceYears: reg.ExperienceYears,
		Certifications:  reg.Certifications,
		Specialties:     reg.Specialties,
		Address:         reg.Address,
	}

	if err := s.Repo.CreateWithUser(usr, prof); err != nil {
		return nil, err
	}
	return &Account{User: *usr, Profile: *prof}, nil
}

// Get retrieves a provider account by profile id.
func (s *DefaultProviderService) Get(id string) (*Account, error) {
	prof, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, utils.NewError(utils.KindNotFound, "Service provider not found.")
	}
	usr, err := s.UserRepo.GetByID(prof.UserID)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, utils.NewError(utils.KindNotFound, "Service provider account not found.")
	}
	return &Account{User: *usr, Profile: *prof}, nil
}

// List retrieves all provider accounts.
func (s *DefaultProviderService) List() ([]Account, error) {
	profiles, err := s.Repo.ListAll()
	if err != nil {
		return nil, err
	}
	accounts := make([]Account, 0, len(profiles))
	for _, prof := range profiles {
		usr, err := s.UserRepo.GetByID(prof.UserID)
		if err != nil {
			return nil, err
		}
		if usr == nil {
			continue
		}
		accounts = append(accounts, Account{User: *usr, Profile: prof})
	}
	return accounts, nil
}

// Update applies a partial update across the user account and the profile.
func (s *DefaultProviderService) Update(id string, update ProfileUpdate) (*Account, error) {
	prof, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, utils.NewError(utils.KindNotFound, "Service provider not found.")
	}

	userDoc := bson.M{}
	if update.Email != nil {
		userDoc["email"] = *update.Email
	}
	if update.Name != nil {
		userDoc["name"] = *update.Name
	}
	if update.DateOfBirth != nil {
		userDoc["date_of_birth"] = *update.DateOfBirth
	}
	if update.Phone != nil {
		userDoc["phone"] = *update.Phone
	}
	if update.ProfileImage != nil {
		userDoc["profile_image"] = *update.ProfileImage
	}
	if update.Status != nil {
		userDoc["status"] = *update.Status
	}
	if update.Password != nil {
		hashed, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, utils.NewError(utils.KindInvalidInput, "Update failed, please try again.")
		}
		userDoc["password_hash"] = hashed
	}

	profileDoc := bson.M{}
	if update.Ethnicity != nil {
		profileDoc["ethnicity"] = *update.Ethnicity
	}
	if update.HairColor != nil {
		profileDoc["hair_color"] = *update.HairColor
	}
	if update.ExperienceYears != nil {
		profileDoc["experience_years"] = *update.ExperienceYears
	}
	if update.Certifications != nil {
		profileDoc["certifications"] = *update.Certifications
	}
	if update.Specialties != nil {
		profileDoc["specialties"] = *update.Specialties
	}
	if update.Address != nil {
		profileDoc["address"] = *update.Address
	}

	if len(userDoc) > 0 {
		if err := s.UserRepo.UpdateSetDocument(prof.UserID, userDoc); err != nil {
			return nil, err
		}
	}
	if len(profileDoc) > 0 {
		if err := s.Repo.UpdateSetDocument(id, profileDoc); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

// Delete removes a provider and everything that depends on them.
func (s *DefaultProviderService) Delete(id string) error {
	return s.Repo.DeleteCascade(id)
}
