package updatestatus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/actor"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/apperror"
	"github.com/divineshedrack33220/pulse-parcel/internal/service/models/order"
	"github.com/divineshedrack33220/pulse-parcel/internal/transport/http/middleware/identity"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateStatus(ctx context.Context, who actor.Actor, orderID int64, newStatus string) (*order.Order, error) {
	args := m.Called(ctx, who, orderID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func newTestRouter(svc *mockService, who *actor.Actor) http.Handler {
	router := chi.NewRouter()
	if who != nil {
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(identity.WithActor(r.Context(), *who)))
			})
		})
	}
	router.Patch("/api/admin/orders/{orderID}/status", func(w http.ResponseWriter, r *http.Request) {
		UpdateStatus(w, r, svc)
	})

	return router
}

func TestUpdateStatusHandler(t *testing.T) {
	admin := actor.Actor{UserID: 1, IsAdmin: true}

	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, admin, int64(42), "Packed").
		Return(&order.Order{ID: 42, OrderNumber: "ORD-000123", Status: order.StatusPacked}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/42/status", strings.NewReader(`{"status":"Packed"}`))
	rec := httptest.NewRecorder()

	newTestRouter(svc, &admin).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got order.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, order.StatusPacked, got.Status)
	svc.AssertExpectations(t)
}

func TestUpdateStatusHandlerForbidden(t *testing.T) {
	user := actor.Actor{UserID: 7}

	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, user, int64(42), "Packed").
		Return(nil, apperror.ErrForbidden)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/42/status", strings.NewReader(`{"status":"Packed"}`))
	rec := httptest.NewRecorder()

	newTestRouter(svc, &user).ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp apperror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperror.CodeForbidden, resp.Error)
}

func TestUpdateStatusHandlerInvalidTransition(t *testing.T) {
	admin := actor.Actor{UserID: 1, IsAdmin: true}

	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, admin, int64(42), "Placed").
		Return(nil, apperror.ErrInvalidStatus)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/42/status", strings.NewReader(`{"status":"Placed"}`))
	rec := httptest.NewRecorder()

	newTestRouter(svc, &admin).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp apperror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperror.CodeValidation, resp.Error)
}

func TestUpdateStatusHandlerBadOrderID(t *testing.T) {
	admin := actor.Actor{UserID: 1, IsAdmin: true}
	svc := &mockService{}

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/abc/status", strings.NewReader(`{"status":"Packed"}`))
	rec := httptest.NewRecorder()

	newTestRouter(svc, &admin).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusHandlerMissingIdentity(t *testing.T) {
	svc := &mockService{}

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/42/status", strings.NewReader(`{"status":"Packed"}`))
	rec := httptest.NewRecorder()

	newTestRouter(svc, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusHandlerBadBody(t *testing.T) {
	admin := actor.Actor{UserID: 1, IsAdmin: true}
	svc := &mockService{}

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/42/status", strings.NewReader(`{`))
	rec := httptest.NewRecorder()

	newTestRouter(svc, &admin).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
