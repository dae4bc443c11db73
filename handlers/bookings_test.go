package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"glowbook/middleware"
	"glowbook/models"
	"glowbook/services/auth"
	"glowbook/services/booking"

	"github.com/gin-gonic/gin"
)

// fakeBookingService records the update it receives so tests can assert on
// what the transport layer passed through.
type fakeBookingService struct {
	stored     models.Booking
	lastID     string
	lastUpdate booking.UpdateRequest
	updates    int
}

func (f *fakeBookingService) Create(auth.Claims, booking.CreateRequest) (*models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingService) Update(ident auth.Claims, id string, req booking.UpdateRequest) (*models.Booking, error) {
	f.lastID = id
	f.lastUpdate = req
	f.updates++
	bk := f.stored
	if req.Start != nil {
		bk.Start = *req.Start
	}
	if req.Status != nil {
		bk.Status = *req.Status
	}
	return &bk, nil
}

func (f *fakeBookingService) Delete(auth.Claims, string) error { return nil }

func (f *fakeBookingService) Get(auth.Claims, string) (*models.Booking, error) {
	bk := f.stored
	return &bk, nil
}

func (f *fakeBookingService) List(auth.Claims, string, string) ([]models.Booking, error) {
	return nil, nil
}

func newBookingRouter(t *testing.T, svc booking.BookingService) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService("test-secret")
	token, err := tokens.Issue(auth.Claims{UserID: "user-p1", Role: models.RoleServiceProvider, ProviderID: "prov-1"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	hb := &HandlerBundle{Bookings: svc}
	r := gin.New()
	api := r.Group("/api/bookings")
	api.Use(middleware.AuthRequired(tokens))
	api.PUT("/:id", hb.UpdateBookingHandler)
	return r, token
}

func putBooking(r *gin.Engine, token, id, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/bookings/"+id, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateBooking_DateAndStatusTogether(t *testing.T) {
	fake := &fakeBookingService{stored: models.Booking{
		ID:         "bk-1",
		ProviderID: "prov-1",
		Start:      time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC),
		Status:     models.BookingPending,
	}}
	r, token := newBookingRouter(t, fake)

	w := putBooking(r, token, "bk-1", `{"date":"2026-04-20T10:00:00Z","status":"confirmed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if fake.updates != 1 {
		t.Fatalf("service received %d updates, want 1", fake.updates)
	}
	if fake.lastID != "bk-1" {
		t.Errorf("booking id = %s, want bk-1", fake.lastID)
	}
	if fake.lastUpdate.Start == nil || !fake.lastUpdate.Start.Equal(time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want 2026-04-20T10:00:00Z", fake.lastUpdate.Start)
	}
	if fake.lastUpdate.Status == nil || *fake.lastUpdate.Status != models.BookingConfirmed {
		t.Errorf("status = %v, want confirmed", fake.lastUpdate.Status)
	}
}

func TestUpdateBooking_DateOnly(t *testing.T) {
	fake := &fakeBookingService{stored: models.Booking{ID: "bk-1", ProviderID: "prov-1", Status: models.BookingPending}}
	r, token := newBookingRouter(t, fake)

	w := putBooking(r, token, "bk-1", `{"date":"2026-04-21T09:00:00Z"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if fake.lastUpdate.Start == nil || fake.lastUpdate.Status != nil {
		t.Errorf("update = %+v, want start only", fake.lastUpdate)
	}
}

func TestUpdateBooking_EmptyPayloadRejected(t *testing.T) {
	fake := &fakeBookingService{stored: models.Booking{ID: "bk-1", ProviderID: "prov-1"}}
	r, token := newBookingRouter(t, fake)

	w := putBooking(r, token, "bk-1", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
	if fake.updates != 0 {
		t.Errorf("service received %d updates, want 0", fake.updates)
	}
}

func TestUpdateBooking_UnknownFieldRejected(t *testing.T) {
	fake := &fakeBookingService{stored: models.Booking{ID: "bk-1", ProviderID: "prov-1"}}
	r, token := newBookingRouter(t, fake)

	w := putBooking(r, token, "bk-1", `{"status":"confirmed","client_id":"someone-else"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
	if fake.updates != 0 {
		t.Errorf("service received %d updates, want 0", fake.updates)
	}
}
