package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BikeService/internal/api/middleware"
	getSlots "github.com/m04kA/SMC-BikeService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BikeService/pkg/types"
)

type fakeUseCase struct {
	lastReq *getSlots.Request
	calls   int
}

func (f *fakeUseCase) Execute(_ context.Context, req *getSlots.Request) (*getSlots.Response, error) {
	f.calls++
	f.lastReq = req
	return &getSlots.Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     []types.TimeString{"09:00", "10:00"},
	}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestHandle_RequiresAuthenticatedUser(t *testing.T) {
	uc := &fakeUseCase{}
	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, noopLogger{}).Handle))

	// Без заголовка гейтвея запрос отклоняется до обращения к use case
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?date=2026-09-15&serviceId=1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, uc.calls)
}

func TestHandle_PassesUserIDFromGateway(t *testing.T) {
	uc := &fakeUseCase{}
	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, noopLogger{}).Handle))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots?date=2026-09-15&serviceId=1", nil)
	req.Header.Set(middleware.HeaderUserID, "7")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(7), uc.lastReq.UserID)
	assert.Equal(t, int64(1), uc.lastReq.ServiceID)
}
