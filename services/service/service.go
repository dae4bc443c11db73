package service

import (
	serviceRepo "glowbook/database/repository/service"
	"glowbook/models"
	"glowbook/services/auth"
	"glowbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateRequest carries the fields a provider submits for a new service.
type CreateRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"`
	CalendarColor   string  `json:"calendar_color"`
	Status          string  `json:"status"`
}

// Update enumerates every mutable service field. Nil means "leave unchanged".
type Update struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"duration"`
	CalendarColor   *string  `json:"calendar_color"`
	Status          *string  `json:"status"`
}

// ServiceCatalog manages bookable services, enforcing provider ownership.
type ServiceCatalog interface {
	Create(ident auth.Claims, req CreateRequest) (*models.Service, error)
	Get(id string) (*models.Service, error)
	List() ([]models.Service, error)
	Update(ident auth.Claims, id string, update Update) (*models.Service, error)
	Delete(ident auth.Claims, id string) error
}

// DefaultServiceCatalog is the production implementation of ServiceCatalog.
type DefaultServiceCatalog struct {
	Repo serviceRepo.ServiceRepository
}

// Create registers a new service owned by the calling provider. An omitted
// duration defaults to an hour; zero-length intervals can never enter
// admission.
func (s *DefaultServiceCatalog) Create(ident auth.Claims, req CreateRequest) (*models.Service, error) {
	if ident.Role != models.RoleServiceProvider {
		return nil, utils.NewError(utils.KindForbidden, "only service providers can create services")
	}
	if ident.ProviderID == "" {
		return nil, utils.NewError(utils.KindInvalidInput, "service provider profile not found")
	}
	if req.Name == "" || req.Description == "" || req.Price <= 0 {
		return nil, utils.NewError(utils.KindInvalidInput, "name, description, and price are required")
	}
	if req.DurationMinutes < 0 {
		return nil, utils.NewError(utils.KindInvalidInput, "duration must be positive")
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = 60
	}
	status := req.Status
	if status == "" {
		status = "active"
	}

	svc := &models.Service{
		ID:              uuid.New().String(),
		ProviderID:      ident.ProviderID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: duration,
		CalendarColor:   req.CalendarColor,
		Status:          status,
	}
	if err := s.Repo.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Get retrieves a service by id.
func (s *DefaultServiceCatalog) Get(id string) (*models.Service, error) {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.NewError(utils.KindNotFound, "Service not found.")
	}
	return svc, nil
}

// List retrieves all services.
func (s *DefaultServiceCatalog) List() ([]models.Service, error) {
	return s.Repo.ListAll()
}

// Update applies a partial update to a service the caller owns.
func (s *DefaultServiceCatalog) Update(ident auth.Claims, id string, update Update) (*models.Service, error) {
	svc, err := s.requireOwned(ident, id)
	if err != nil {
		return nil, err
	}

	updateDoc := bson.M{}
	if update.Name != nil {
		updateDoc["name"] = *update.Name
	}
	if update.Description != nil {
		updateDoc["description"] = *update.Description
	}
	if update.Price != nil {
		updateDoc["price"] = *update.Price
	}
	if update.DurationMinutes != nil {
		if *update.DurationMinutes <= 0 {
			return nil, utils.NewError(utils.KindInvalidInput, "duration must be positive")
		}
		updateDoc["duration_minutes"] = *update.DurationMinutes
	}
	if update.CalendarColor != nil {
		updateDoc["calendar_color"] = *update.CalendarColor
	}
	if update.Status != nil {
		updateDoc["status"] = *update.Status
	}
	if len(updateDoc) == 0 {
		return svc, nil
	}

	if err := s.Repo.UpdateSetDocument(id, updateDoc); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// Delete removes a service the caller owns.
func (s *DefaultServiceCatalog) Delete(ident auth.Claims, id string) error {
	if _, err := s.requireOwned(ident, id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// requireOwned loads the service and checks the caller is its provider.
func (s *DefaultServiceCatalog) requireOwned(ident auth.Claims, id string) (*models.Service, error) {
	if ident.Role != models.RoleServiceProvider {
		return nil, utils.NewError(utils.KindForbidden, "only service providers can modify services")
	}
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.NewError(utils.KindNotFound, "Service not found.")
	}
	if svc.ProviderID != ident.ProviderID {
		return nil, utils.NewError(utils.KindForbidden, "you can only modify your own services")
	}
	return svc, nil
}
