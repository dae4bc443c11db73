package booking

import (
	"sync"
	"testing"
	"time"

	"glowbook/models"
	"glowbook/services/auth"
	"glowbook/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeBookingRepo is an in-memory BookingRepository for service tests.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *bk
	return &cp, nil
}

func (r *fakeBookingRepo) ListActiveByProvider(providerID, excludeID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, bk := range r.bookings {
		if bk.ProviderID != providerID || bk.Status == models.BookingCancelled {
			continue
		}
		if excludeID != "" && bk.ID == excludeID {
			continue
		}
		out = append(out, *bk)
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByClient(clientID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, bk := range r.bookings {
		if bk.ClientID == clientID {
			out = append(out, *bk)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByProvider(providerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, bk := range r.bookings {
		if bk.ProviderID == providerID {
			out = append(out, *bk)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListAll() ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, bk := range r.bookings {
		out = append(out, *bk)
	}
	return out, nil
}

func (r *fakeBookingRepo) Create(bk *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *bk
	r.bookings[bk.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) UpdateFields(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return utils.NewError(utils.KindNotFound, "booking not found")
	}
	if start, ok := updateDoc["start"].(time.Time); ok {
		bk.Start = start
	}
	if status, ok := updateDoc["status"].(string); ok {
		bk.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) DeleteCascade(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return utils.NewError(utils.KindNotFound, "booking not found")
	}
	delete(r.bookings, id)
	return nil
}

// fakeServiceRepo serves a fixed catalog.
type fakeServiceRepo struct {
	services map[string]*models.Service
}

func newFakeServiceRepo(services ...*models.Service) *fakeServiceRepo {
	repo := &fakeServiceRepo{services: make(map[string]*models.Service)}
	for _, svc := range services {
		repo.services[svc.ID] = svc
	}
	return repo
}

func (r *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	cp := *svc
	return &cp, nil
}

func (r *fakeServiceRepo) ListAll() ([]models.Service, error)              { return nil, nil }
func (r *fakeServiceRepo) ListByProvider(string) ([]models.Service, error) { return nil, nil }
func (r *fakeServiceRepo) Create(*models.Service) error                    { return nil }
func (r *fakeServiceRepo) UpdateSetDocument(string, bson.M) error          { return nil }
func (r *fakeServiceRepo) Delete(string) error                             { return nil }

var (
	clientIdent   = auth.Claims{UserID: "client-1", Role: models.RoleClient}
	otherClient   = auth.Claims{UserID: "client-2", Role: models.RoleClient}
	providerIdent = auth.Claims{UserID: "user-p1", Role: models.RoleServiceProvider, ProviderID: "prov-1"}
	adminIdent    = auth.Claims{UserID: "admin-1", Role: models.RoleAdmin}
)

func newTestService(t *testing.T) (*DefaultBookingService, *fakeBookingRepo) {
	t.Helper()
	repo := newFakeBookingRepo()
	svcRepo := newFakeServiceRepo(&models.Service{
		ID:              "svc-1",
		ProviderID:      "prov-1",
		Name:            "Haircut",
		DurationMinutes: 60,
	})
	return NewDefaultBookingService(repo, svcRepo), repo
}

func at(hour int) time.Time {
	return time.Date(2026, 4, 20, hour, 0, 0, 0, time.UTC)
}

func TestCreate_AdmitsAndSnapshotsDuration(t *testing.T) {
	svc, _ := newTestService(t)

	bk, err := svc.Create(clientIdent, CreateRequest{
		ServiceID:  "svc-1",
		ProviderID: "prov-1",
		Start:      at(9),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if bk.DurationMinutes != 60 {
		t.Errorf("duration snapshot = %d, want 60", bk.DurationMinutes)
	}
	if bk.Status != models.BookingPending {
		t.Errorf("default status = %s, want pending", bk.Status)
	}
	if bk.ClientID != clientIdent.UserID {
		t.Errorf("client id = %s, want %s", bk.ClientID, clientIdent.UserID)
	}
}

func TestCreate_RejectsOverlap(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(otherClient, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9).Add(30 * time.Minute)})
	if utils.KindOf(err) != utils.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreate_IgnoresCancelledBookings(t *testing.T) {
	svc, repo := newTestService(t)

	bk, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := repo.UpdateFields(bk.ID, bson.M{"status": models.BookingCancelled}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// A cancelled booking releases its slot.
	if _, err := svc.Create(otherClient, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)}); err != nil {
		t.Fatalf("create over cancelled booking: %v", err)
	}
}

func TestCreate_OnlyClients(t *testing.T) {
	svc, _ := newTestService(t)

	for _, ident := range []auth.Claims{providerIdent, adminIdent} {
		_, err := svc.Create(ident, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)})
		if utils.KindOf(err) != utils.KindForbidden {
			t.Errorf("role %s: expected forbidden, got %v", ident.Role, err)
		}
	}
}

func TestCreate_UnknownService(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(clientIdent, CreateRequest{ServiceID: "nope", ProviderID: "prov-1", Start: at(9)})
	if utils.KindOf(err) != utils.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreate_InitialStatus(t *testing.T) {
	svc, _ := newTestService(t)

	bk, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9), Status: models.BookingConfirmed})
	if err != nil {
		t.Fatalf("create confirmed: %v", err)
	}
	if bk.Status != models.BookingConfirmed {
		t.Errorf("status = %s, want confirmed", bk.Status)
	}

	_, err = svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(11), Status: models.BookingCompleted})
	if utils.KindOf(err) != utils.KindInvalidInput {
		t.Fatalf("expected invalid input for completed initial status, got %v", err)
	}
}

func TestCreate_ConcurrentAdmissionsSerialize(t *testing.T) {
	svc, repo := newTestService(t)

	start := at(9)
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ident := clientIdent
			if i == 1 {
				ident = otherClient
			}
			_, errs[i] = svc.Create(ident, CreateRequest{
				ServiceID:  "svc-1",
				ProviderID: "prov-1",
				Start:      start.Add(time.Duration(i) * 30 * time.Minute),
			})
		}(i)
	}
	wg.Wait()

	var conflicts, successes int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case utils.KindOf(err) == utils.KindConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("got %d successes and %d conflicts, want exactly one of each", successes, conflicts)
	}
	all, _ := repo.ListAll()
	if len(all) != 1 {
		t.Fatalf("repo holds %d bookings, want 1", len(all))
	}
}

func reschedule(start time.Time) UpdateRequest {
	return UpdateRequest{Start: &start}
}

func transition(status string) UpdateRequest {
	return UpdateRequest{Status: &status}
}

func TestUpdate_RescheduleExcludesSelf(t *testing.T) {
	svc, _ := newTestService(t)

	bk, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Moving within the booking's own interval must not self-conflict.
	moved, err := svc.Update(clientIdent, bk.ID, reschedule(at(9).Add(30*time.Minute)))
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if !moved.Start.Equal(at(9).Add(30 * time.Minute)) {
		t.Errorf("start = %v, want %v", moved.Start, at(9).Add(30*time.Minute))
	}
}

func TestUpdate_RescheduleConflictsWithOthers(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	bk, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(11)})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	_, err = svc.Update(clientIdent, bk.ID, reschedule(at(9).Add(15*time.Minute)))
	if utils.KindOf(err) != utils.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdate_Authorization(t *testing.T) {
	svc, _ := newTestService(t)

	bk, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(otherClient, bk.ID, reschedule(at(14))); utils.KindOf(err) != utils.KindForbidden {
		t.Errorf("other client: expected forbidden, got %v", err)
	}
	if _, err := svc.Update(providerIdent, bk.ID, reschedule(at(14))); err != nil {
		t.Errorf("owning provider: %v", err)
	}
	if _, err := svc.Update(adminIdent, bk.ID, reschedule(at(15))); err != nil {
		t.Errorf("admin: %v", err)
	}
}

func TestUpdate_ClientsOnlyCancel(t *testing.T) {
	svc, _ := newTestService(t)

	bk, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(clientIdent, bk.ID, transition(models.BookingConfirmed)); utils.KindOf(err) != utils.KindForbidden {
		t.Errorf("client confirm: expected forbidden, got %v", err)
	}
	if _, err := svc.Update(providerIdent, bk.ID, transition(models.BookingConfirmed)); err != nil {
		t.Errorf("provider confirm: %v", err)
	}
	if _, err := svc.Update(clientIdent, bk.ID, transition(models.BookingCancelled)); err != nil {
		t.Errorf("client cancel: %v", err)
	}
}

func TestUpdate_RejectsInvalidTransition(t *testing.T) {
	svc, _ := newTestService(t)

	bk, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(providerIdent, bk.ID, transition(models.BookingCompleted)); utils.KindOf(err) != utils.KindInvalidTransition {
		t.Errorf("pending->completed: expected invalid transition, got %v", err)
	}

	if _, err := svc.Update(providerIdent, bk.ID, transition(models.BookingCancelled)); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Update(providerIdent, bk.ID, transition(models.BookingConfirmed)); utils.KindOf(err) != utils.KindInvalidTransition {
		t.Errorf("cancelled->confirmed: expected invalid transition, got %v", err)
	}
}

func TestUpdate_RescheduleAndStatusTogether(t *testing.T) {
	svc, repo := newTestService(t)

	bk, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newStart := at(14)
	status := models.BookingConfirmed
	updated, err := svc.Update(providerIdent, bk.ID, UpdateRequest{Start: &newStart, Status: &status})
	if err != nil {
		t.Fatalf("combined update: %v", err)
	}
	if !updated.Start.Equal(newStart) || updated.Status != models.BookingConfirmed {
		t.Errorf("updated = (%v, %s), want (%v, confirmed)", updated.Start, updated.Status, newStart)
	}

	stored, err := repo.GetByID(bk.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.Start.Equal(newStart) || stored.Status != models.BookingConfirmed {
		t.Errorf("stored = (%v, %s), want (%v, confirmed)", stored.Start, stored.Status, newStart)
	}
}

func TestUpdate_CombinedRejectedAtomically(t *testing.T) {
	svc, repo := newTestService(t)

	if _, err := svc.Create(otherClient, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(11)}); err != nil {
		t.Fatalf("create blocker: %v", err)
	}
	bk, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A conflicting date must veto the whole update: the valid status change
	// is not applied either.
	newStart := at(11).Add(30 * time.Minute)
	status := models.BookingConfirmed
	_, err = svc.Update(providerIdent, bk.ID, UpdateRequest{Start: &newStart, Status: &status})
	if utils.KindOf(err) != utils.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	stored, err := repo.GetByID(bk.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.Start.Equal(at(9)) || stored.Status != models.BookingPending {
		t.Errorf("stored = (%v, %s), want unchanged (%v, pending)", stored.Start, stored.Status, at(9))
	}
}

func TestUpdate_RequiresAField(t *testing.T) {
	svc, _ := newTestService(t)

	bk, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(clientIdent, bk.ID, UpdateRequest{}); utils.KindOf(err) != utils.KindInvalidInput {
		t.Fatalf("empty update: expected invalid input, got %v", err)
	}
}

func TestDelete_FreesSlot(t *testing.T) {
	svc, _ := newTestService(t)

	bk, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(clientIdent, bk.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Create(otherClient, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)}); err != nil {
		t.Fatalf("rebook after delete: %v", err)
	}
	if err := svc.Delete(clientIdent, bk.ID); utils.KindOf(err) != utils.KindNotFound {
		t.Fatalf("double delete: expected not found, got %v", err)
	}
}

func TestList_ScopesByRole(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Create(clientIdent, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(9)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(otherClient, CreateRequest{ServiceID: "svc-1", ProviderID: "prov-1", Start: at(11)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	own, err := svc.List(clientIdent, "", "")
	if err != nil {
		t.Fatalf("client list: %v", err)
	}
	if len(own) != 1 || own[0].ClientID != clientIdent.UserID {
		t.Errorf("client list = %v, want only own booking", own)
	}

	cal, err := svc.List(providerIdent, "", "")
	if err != nil {
		t.Fatalf("provider list: %v", err)
	}
	if len(cal) != 2 {
		t.Errorf("provider list has %d bookings, want 2", len(cal))
	}

	// Admin filters are honored; client/provider filters are ignored for
	// non-admin callers.
	filtered, err := svc.List(adminIdent, otherClient.UserID, "")
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ClientID != otherClient.UserID {
		t.Errorf("admin filtered list = %v, want other client's booking", filtered)
	}

	all, err := svc.List(adminIdent, "", "")
	if err != nil {
		t.Fatalf("admin list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin list has %d bookings, want 2", len(all))
	}
}
