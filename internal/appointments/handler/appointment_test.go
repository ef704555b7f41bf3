package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medibook/internal/appointments/service"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/logger"
	"medibook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockAppointmentService struct {
	availabilityFunc func(ctx context.Context, doctorID, date string) ([]model.Slot, error)
	bookFunc         func(ctx context.Context, req service.BookRequest) (*model.Appointment, error)
	cancelFunc       func(ctx context.Context, id string) (*model.Appointment, error)
	listAllFunc      func(ctx context.Context, filter service.ListFilter) (*model.CategorizedAppointments, error)
}

func (m *mockAppointmentService) Availability(ctx context.Context, doctorID, date string) ([]model.Slot, error) {
	return m.availabilityFunc(ctx, doctorID, date)
}

func (m *mockAppointmentService) Book(ctx context.Context, req service.BookRequest) (*model.Appointment, error) {
	return m.bookFunc(ctx, req)
}

func (m *mockAppointmentService) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	return m.cancelFunc(ctx, id)
}

func (m *mockAppointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	return nil, apperrors.NotFoundWithID("Appointment", id)
}

func (m *mockAppointmentService) ListAll(ctx context.Context, filter service.ListFilter) (*model.CategorizedAppointments, error) {
	return m.listAllFunc(ctx, filter)
}

func newRouter(svc service.AppointmentService) *httprouter.Router {
	router := httprouter.New()
	NewAppointmentHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSlots_PassesQueryToService(t *testing.T) {
	var gotDoctor, gotDate string
	router := newRouter(&mockAppointmentService{
		availabilityFunc: func(_ context.Context, doctorID, date string) ([]model.Slot, error) {
			gotDoctor, gotDate = doctorID, date
			return []model.Slot{{Time: "08:00 AM", Available: true}, {Time: "08:15 AM", Available: false}}, nil
		},
	})

	rec := serve(router, http.MethodGet, "/api/v1/appointments/slots?doctor_id=abc&date=2025-03-10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if gotDoctor != "abc" || gotDate != "2025-03-10" {
		t.Errorf("service got doctor=%q date=%q", gotDoctor, gotDate)
	}

	var resp struct {
		Data []model.Slot `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Data) != 2 || resp.Data[1].Available {
		t.Errorf("unexpected slots: %+v", resp.Data)
	}
}

func TestBook_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "created", body: `{"doctor_id":"d","patient_id":"p","date":"2025-03-10","time":"09:00 AM"}`, wantStatus: http.StatusCreated},
		{name: "malformed body", body: `{"doctor_id":`, wantStatus: http.StatusBadRequest, wantCode: apperrors.CodeInvalidInput},
		{name: "unknown field", body: `{"doctor":"d"}`, wantStatus: http.StatusBadRequest, wantCode: apperrors.CodeInvalidInput},
		{name: "conflict", body: `{"doctor_id":"d"}`, err: apperrors.Conflict("slot already booked"), wantStatus: http.StatusConflict, wantCode: apperrors.CodeConflict},
		{name: "not found", body: `{"doctor_id":"d"}`, err: apperrors.NotFoundWithID("Doctor", "d"), wantStatus: http.StatusNotFound, wantCode: apperrors.CodeNotFound},
		{name: "unavailable", body: `{"doctor_id":"d"}`, err: apperrors.StorageUnavailable("appointment", nil), wantStatus: http.StatusServiceUnavailable, wantCode: apperrors.CodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockAppointmentService{
				bookFunc: func(_ context.Context, req service.BookRequest) (*model.Appointment, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &model.Appointment{ID: "a1", DoctorID: req.DoctorID, Date: req.Date, Time: req.Time, Status: model.StatusBooked}, nil
				},
			})

			rec := serve(router, http.MethodPost, "/api/v1/appointments", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode == "" {
				return
			}
			var resp struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestCancel_Route(t *testing.T) {
	var gotID string
	router := newRouter(&mockAppointmentService{
		cancelFunc: func(_ context.Context, id string) (*model.Appointment, error) {
			gotID = id
			return &model.Appointment{ID: id, Status: model.StatusCancelled}, nil
		},
	})

	rec := serve(router, http.MethodPatch, "/api/v1/appointments/id/65f0c0ffee0000000000000a/cancel", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if gotID != "65f0c0ffee0000000000000a" {
		t.Errorf("service got id %q", gotID)
	}
	if !strings.Contains(rec.Body.String(), `"status":"cancelled"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestListAll_Buckets(t *testing.T) {
	var gotFilter service.ListFilter
	router := newRouter(&mockAppointmentService{
		listAllFunc: func(_ context.Context, filter service.ListFilter) (*model.CategorizedAppointments, error) {
			gotFilter = filter
			result := model.NewCategorizedAppointments()
			result.Future = append(result.Future, &model.Appointment{ID: "a1"})
			return result, nil
		},
	})

	rec := serve(router, http.MethodGet, "/api/v1/appointments?patient_id=p1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if gotFilter.PatientID != "p1" || gotFilter.DoctorID != "" {
		t.Errorf("unexpected filter: %+v", gotFilter)
	}

	var resp struct {
		Data struct {
			Past    []model.Appointment `json:"past"`
			Present []model.Appointment `json:"present"`
			Future  []model.Appointment `json:"future"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Data.Past == nil || resp.Data.Present == nil {
		t.Error("empty buckets must serialize as arrays")
	}
	if len(resp.Data.Future) != 1 {
		t.Errorf("expected 1 future appointment, got %d", len(resp.Data.Future))
	}
}
