package user

import (
	providerRepo "glowbook/database/repository/provider"
	userRepo "glowbook/database/repository/user"
	"glowbook/models"
	"glowbook/services/auth"
	"glowbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Repo         userRepo.UserRepository
	ProviderRepo providerRepo.ProviderRepository
	Tokens       *auth.TokenService
}

// Login verifies credentials against the stored digest and issues a signed
// identity token. Unknown email and wrong password are indistinguishable to
// the caller.
func (s *DefaultUserService) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", utils.NewError(utils.KindInvalidInput, "Email and password are required.")
	}

	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if usr == nil || !auth.CheckPassword(password, usr.PasswordHash) {
		return nil, "", utils.NewError(utils.KindUnauthenticated, "Invalid credentials.")
	}

	claims := auth.Claims{
		UserID: usr.ID,
		Role:   usr.Role,
		Name:   usr.Name,
		Email:  usr.Email,
	}
	if usr.Role == models.RoleServiceProvider {
		prov, err := s.ProviderRepo.GetByUserID(usr.ID)
		if err != nil {
			return nil, "", err
		}
		if prov != nil {
			claims.ProviderID = prov.ID
		}
	}

	token, err := s.Tokens.Issue(claims)
	if err != nil {
		utils.GetLogger().Error("Failed to issue token", zap.Error(err))
		return nil, "", utils.NewError(utils.KindUnauthenticated, "Login failed, please try again.")
	}
	return usr, token, nil
}

// RegisterClient creates a CLIENT account.
func (s *DefaultUserService) RegisterClient(reg Registration) (*models.User, error) {
	return s.register(reg, models.RoleClient)
}

// RegisterAdmin creates an ADMIN account.
func (s *DefaultUserService) RegisterAdmin(reg Registration) (*models.User, error) {
	return s.register(reg, models.RoleAdmin)
}

func (s *DefaultUserService) register(reg Registration, role string) (*models.User, error) {
	if reg.Email == "" || reg.Password == "" || reg.Name == "" {
		return nil, utils.NewError(utils.KindInvalidInput, "Email, password, and name are required.")
	}

	existing, err := s.Repo.GetByEmail(reg.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewError(utils.KindConflict, "User with this email already exists.")
	}

	hashed, err := auth.HashPassword(reg.Password)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, utils.NewError(utils.KindInvalidInput, "Registration failed, please try again.")
	}

	status := reg.Status
	if status == "" {
		status = "active"
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Email:        reg.Email,
		PasswordHash: hashed,
		Name:         reg.Name,
		Role:         role,
		DateOfBirth:  reg.DateOfBirth,
		Phone:        reg.Phone,
		ProfileColor: utils.GenerateProfileColor(),
		ProfileImage: reg.ProfileImage,
		Status:       status,
	}
	if err := s.Repo.Create(usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// GetClient retrieves a client account by id.
func (s *DefaultUserService) GetClient(id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usr == nil || usr.Role != models.RoleClient {
		return nil, utils.NewError(utils.KindNotFound, "Client not found.")
	}
	return usr, nil
}

// ListClients retrieves all client accounts.
func (s *DefaultUserService) ListClients() ([]models.User, error) {
	return s.Repo.ListByRole(models.RoleClient)
}

// UpdateClient applies a partial update to a client account. Only fields
// explicitly present in the update are touched.
func (s *DefaultUserService) UpdateClient(id string, update ClientUpdate) (*models.User, error) {
	usr, err := s.GetClient(id)
	if err != nil {
		return nil, err
	}

	updateDoc := bson.M{}
	if update.Email != nil {
		updateDoc["email"] = *update.Email
	}
	if update.Name != nil {
		updateDoc["name"] = *update.Name
	}
	if update.DateOfBirth != nil {
		updateDoc["date_of_birth"] = *update.DateOfBirth
	}
	if update.Phone != nil {
		updateDoc["phone"] = *update.Phone
	}
	if update.ProfileImage != nil {
		updateDoc["profile_image"] = *update.ProfileImage
	}
	if update.Status != nil {
		updateDoc["status"] = *update.Status
	}
	if update.Password != nil {
		hashed, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, utils.NewError(utils.KindInvalidInput, "Update failed, please try again.")
		}
		updateDoc["password_hash"] = hashed
	}
	if len(updateDoc) == 0 {
		return usr, nil
	}

	if err := s.Repo.UpdateSetDocument(id, updateDoc); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// DeleteClient removes a client together with their dependent records.
func (s *DefaultUserService) DeleteClient(id string) error {
	return s.Repo.DeleteClientCascade(id)
}
