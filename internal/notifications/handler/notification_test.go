package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medibook/internal/notifications/events"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/logger"
	"medibook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockNotificationService struct {
	identifier string
	limit      int
	offset     int64
}

func (m *mockNotificationService) RecordAppointmentBooked(context.Context, events.AppointmentBooked) error {
	return nil
}

func (m *mockNotificationService) ListForUser(_ context.Context, identifier string, limit int, offset int64) ([]*model.Notification, int64, error) {
	m.identifier, m.limit, m.offset = identifier, limit, offset
	return []*model.Notification{{ID: "n1", UserID: "u1", Message: "hi"}}, 7, nil
}

func (m *mockNotificationService) MarkRead(_ context.Context, id string) (*model.Notification, error) {
	if id != "n1" {
		return nil, apperrors.NotFoundWithID("Notification", id)
	}
	return &model.Notification{ID: id, Read: true}, nil
}

func newRouter(svc *mockNotificationService) *httprouter.Router {
	router := httprouter.New()
	NewNotificationHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestListForUser_Paginated(t *testing.T) {
	svc := &mockNotificationService{}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/user/ada@example.com?limit=5&offset=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if svc.identifier != "ada@example.com" || svc.limit != 5 || svc.offset != 2 {
		t.Errorf("service got identifier=%q limit=%d offset=%d", svc.identifier, svc.limit, svc.offset)
	}

	var resp struct {
		Data       []model.Notification `json:"data"`
		TotalCount int64                `json:"total_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.TotalCount != 7 || len(resp.Data) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestMarkRead_Route(t *testing.T) {
	router := newRouter(&mockNotificationService{})

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/v1/notifications/id/n1/read", http.StatusOK},
		{"/api/v1/notifications/id/n2/read", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPatch, tt.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.path, rec.Code, tt.wantStatus)
		}
	}
}
