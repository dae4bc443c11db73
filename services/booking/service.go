package booking

import (
	"time"

	bookingRepo "glowbook/database/repository/booking"
	serviceRepo "glowbook/database/repository/service"
	"glowbook/models"
	"glowbook/services/auth"
	"glowbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	ServiceRepo serviceRepo.ServiceRepository

	locks *providerLockStore
}

// NewDefaultBookingService wires a booking service over the given repositories.
func NewDefaultBookingService(repo bookingRepo.BookingRepository, svcRepo serviceRepo.ServiceRepository) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:        repo,
		ServiceRepo: svcRepo,
		locks:       newProviderLockStore(),
	}
}

// Create admits and persists a new booking. Only clients may book; the
// service duration is snapshotted onto the booking so later edits to the
// service never shift this booking's interval.
func (s *DefaultBookingService) Create(ident auth.Claims, req CreateRequest) (*models.Booking, error) {
	if ident.Role != models.RoleClient {
		return nil, utils.NewError(utils.KindForbidden, "only clients can create bookings")
	}
	if req.ServiceID == "" || req.ProviderID == "" || req.Start.IsZero() {
		return nil, utils.NewError(utils.KindInvalidInput, "service id, provider id, and date are required")
	}

	initialStatus := req.Status
	if initialStatus == "" {
		initialStatus = models.BookingPending
	}
	if initialStatus != models.BookingPending && initialStatus != models.BookingConfirmed {
		return nil, utils.Errorf(utils.KindInvalidInput, "invalid initial booking status %q", initialStatus)
	}

	svc, err := s.ServiceRepo.GetByID(req.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.NewError(utils.KindNotFound, "service not found")
	}

	duration := time.Duration(svc.DurationMinutes) * time.Minute

	// The candidate read and the insert must see a consistent world; the
	// provider lock serializes concurrent admissions for one provider.
	lock := s.locks.get(req.ProviderID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.Repo.ListActiveByProvider(req.ProviderID, "")
	if err != nil {
		return nil, err
	}
	if conflict := FindConflict(req.Start, duration, existing); conflict != nil {
		utils.GetLogger().Info("Booking admission rejected",
			zap.String("providerID", req.ProviderID),
			zap.Time("proposedStart", req.Start),
			zap.String("conflictingBookingID", conflict.ID))
		return nil, utils.NewError(utils.KindConflict, "Time slot is not available. Please choose a different time.")
	}

	bk := &models.Booking{
		ID:              uuid.New().String(),
		ClientID:        ident.UserID,
		ProviderID:      req.ProviderID,
		ServiceID:       req.ServiceID,
		Start:           req.Start,
		DurationMinutes: svc.DurationMinutes,
		Status:          initialStatus,
	}
	if err := s.Repo.Create(bk); err != nil {
		return nil, err
	}
	return bk, nil
}

// Update reschedules a booking and/or transitions its status. A new start
// re-runs admission against the provider's other active bookings using the
// booking's stored duration; a new status is validated against the state
// machine. Both fields land in a single write so a reschedule-plus-confirm
// never half-applies.
func (s *DefaultBookingService) Update(ident auth.Claims, bookingID string, req UpdateRequest) (*models.Booking, error) {
	if bookingID == "" || (req.Start == nil && req.Status == nil) {
		return nil, utils.NewError(utils.KindInvalidInput, "a new date or a new status is required")
	}
	if req.Start != nil && req.Start.IsZero() {
		return nil, utils.NewError(utils.KindInvalidInput, "date must be a valid instant")
	}

	bk, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if bk == nil {
		return nil, utils.NewError(utils.KindNotFound, "booking not found")
	}
	if err := s.authorizeMutation(ident, bk); err != nil {
		return nil, err
	}

	updateDoc := bson.M{}
	if req.Status != nil {
		// Clients may only back out of their own bookings.
		if ident.Role == models.RoleClient && *req.Status != models.BookingCancelled {
			return nil, utils.NewError(utils.KindForbidden, "clients can only cancel bookings")
		}
		if err := validateTransition(bk.Status, *req.Status); err != nil {
			return nil, err
		}
		updateDoc["status"] = *req.Status
	}
	if req.Start != nil {
		duration := time.Duration(bk.DurationMinutes) * time.Minute

		lock := s.locks.get(bk.ProviderID)
		lock.Lock()
		defer lock.Unlock()

		// Exclude this booking so it never conflicts with its own prior interval.
		existing, err := s.Repo.ListActiveByProvider(bk.ProviderID, bk.ID)
		if err != nil {
			return nil, err
		}
		if conflict := FindConflict(*req.Start, duration, existing); conflict != nil {
			return nil, utils.NewError(utils.KindConflict, "Time slot is not available. Please choose a different time.")
		}
		updateDoc["start"] = *req.Start
	}

	if err := s.Repo.UpdateFields(bk.ID, updateDoc); err != nil {
		return nil, err
	}
	if req.Start != nil {
		bk.Start = *req.Start
	}
	if req.Status != nil {
		bk.Status = *req.Status
	}
	return bk, nil
}

// Delete removes a booking and its dependent payment records.
func (s *DefaultBookingService) Delete(ident auth.Claims, bookingID string) error {
	bk, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if bk == nil {
		return utils.NewError(utils.KindNotFound, "booking not found")
	}
	if err := s.authorizeMutation(ident, bk); err != nil {
		return err
	}
	return s.Repo.DeleteCascade(bookingID)
}

// Get retrieves a booking, enforcing visibility for non-admin identities.
func (s *DefaultBookingService) Get(ident auth.Claims, bookingID string) (*models.Booking, error) {
	bk, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if bk == nil {
		return nil, utils.NewError(utils.KindNotFound, "booking not found")
	}
	if err := s.authorizeMutation(ident, bk); err != nil {
		return nil, err
	}
	return bk, nil
}

// List retrieves bookings. Admins may filter freely; clients and providers
// are scoped to their own bookings regardless of the requested filter.
func (s *DefaultBookingService) List(ident auth.Claims, clientID, providerID string) ([]models.Booking, error) {
	switch ident.Role {
	case models.RoleClient:
		return s.Repo.ListByClient(ident.UserID)
	case models.RoleServiceProvider:
		return s.Repo.ListByProvider(ident.ProviderID)
	case models.RoleAdmin:
		if clientID != "" {
			return s.Repo.ListByClient(clientID)
		}
		if providerID != "" {
			return s.Repo.ListByProvider(providerID)
		}
		return s.Repo.ListAll()
	default:
		return nil, utils.NewError(utils.KindForbidden, "unknown role")
	}
}

// authorizeMutation allows the originating client, the booked provider, or
// an admin to act on a booking.
func (s *DefaultBookingService) authorizeMutation(ident auth.Claims, bk *models.Booking) error {
	switch ident.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleClient:
		if bk.ClientID == ident.UserID {
			return nil
		}
	case models.RoleServiceProvider:
		if bk.ProviderID == ident.ProviderID {
			return nil
		}
	}
	return utils.NewError(utils.KindForbidden, "you can only act on your own bookings")
}
