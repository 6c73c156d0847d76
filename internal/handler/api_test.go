package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/linenlog/internal/service"
	"github.com/linenlog/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var handlerNow = time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T, medium storage.Medium) *service.LedgerService {
	t.Helper()

	ledger := service.NewLedgerService(medium, service.WithClock(func() time.Time { return handlerNow }))
	require.NoError(t, ledger.Init(context.Background()))
	return ledger
}

// newTestEngine 按生产路由的方式挂载处理器，但不经过 router 包以避免循环依赖。
func newTestEngine(api *API) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions("linenlog_session", cookie.NewStore([]byte("test-secret"))))

	root := r.Group("/api")
	root.Use(api.LocaleMiddleware())
	root.POST("/login", api.Login)
	root.POST("/logout", api.Logout)

	auth := root.Group("")
	auth.Use(api.AuthRequired())
	auth.GET("/items", api.GetItems)
	auth.POST("/items", api.CreateItem)
	auth.PUT("/items/:name", api.RenameItem)
	auth.DELETE("/items/:name", api.DeleteItem)
	auth.GET("/days", api.GetDays)
	auth.POST("/days", api.CreateDay)
	auth.GET("/days/:id", api.GetDay)
	auth.PATCH("/days/:id", api.UpdateDay)
	auth.DELETE("/days/:id", api.DeleteDay)
	auth.PUT("/days/:id/items/:item", api.SetInventoryItem)
	auth.POST("/days/:id/items/:item/adjust", api.AdjustInventoryItem)
	auth.GET("/days/:id/sheet", api.GetDaySheet)
	auth.GET("/days/:id/report", api.GetDayReport)
	return r
}

func setupHandlerTest(t *testing.T) (*gin.Engine, *service.LedgerService) {
	t.Helper()

	ledger := newTestLedger(t, storage.NewMemory())
	return newTestEngine(NewAPI(ledger, zap.NewNop(), "")), ledger
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	return payload
}

func decodeField(t *testing.T, rec *httptest.ResponseRecorder, field string, dst any) {
	t.Helper()

	payload := decodeBody(t, rec)
	raw, ok := payload[field]
	require.Truef(t, ok, "missing field %q in %s", field, rec.Body.String())
	require.NoError(t, json.Unmarshal(raw, dst))
}

type brokenMedium struct {
	storage.Medium
}

func (brokenMedium) Save(context.Context, ...storage.Entry) error {
	return errors.New("disk full")
}
