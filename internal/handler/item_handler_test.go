package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/linenlog/internal/service"
	"github.com/linenlog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetItemsReturnsDefaultCatalog(t *testing.T) {
	r, _ := setupHandlerTest(t)

	rec := doJSON(t, r, http.MethodGet, "/api/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []string
	decodeField(t, rec, "items", &items)
	assert.Equal(t, service.DefaultCatalog(), items)
}

func TestCreateItem(t *testing.T) {
	r, ledger := setupHandlerTest(t)

	rec := doJSON(t, r, http.MethodPost, "/api/items", map[string]string{"name": "  Bath Robes  "})
	require.Equal(t, http.StatusCreated, rec.Code)

	var items []string
	decodeField(t, rec, "items", &items)
	assert.Equal(t, "Bath Robes", items[len(items)-1])

	stored, err := ledger.MasterList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, stored)
}

func TestCreateItemRejections(t *testing.T) {
	r, _ := setupHandlerTest(t)

	tests := []struct {
		name   string
		body   any
		status int
		error  string
	}{
		{name: "missing name", body: map[string]string{}, status: http.StatusBadRequest, error: "Item name is required"},
		{name: "blank name", body: map[string]string{"name": "   "}, status: http.StatusBadRequest, error: "Item name is required"},
		{name: "duplicate", body: map[string]string{"name": "Flat Sheets King"}, status: http.StatusConflict, error: "Item already exists"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/items", tc.body, "Accept-Language", "en-US")
			require.Equal(t, tc.status, rec.Code)

			var message string
			decodeField(t, rec, "error", &message)
			assert.Equal(t, tc.error, message)
		})
	}
}

func TestCreateItemDefaultsToChineseMessages(t *testing.T) {
	r, _ := setupHandlerTest(t)

	rec := doJSON(t, r, http.MethodPost, "/api/items", map[string]string{"name": "Flat Sheets King"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "zh-CN", rec.Header().Get("Content-Language"))

	var message string
	decodeField(t, rec, "error", &message)
	assert.Equal(t, "物品已存在", message)
}

func TestLangQueryOverridesHeaderAndSetsCookie(t *testing.T) {
	r, _ := setupHandlerTest(t)

	rec := doJSON(t, r, http.MethodDelete, "/api/items/Nothing?lang=en", nil, "Accept-Language", "zh-CN")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en-US", rec.Header().Get("Content-Language"))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), languageCookieName+"=en")

	var message string
	decodeField(t, rec, "message", &message)
	assert.Equal(t, "Item deleted", message)
}

func TestRenameItemMigratesDays(t *testing.T) {
	r, ledger := setupHandlerTest(t)
	ctx := context.Background()

	day, err := ledger.CreateDay(ctx)
	require.NoError(t, err)
	require.NoError(t, ledger.UpdateInventoryItem(ctx, day.ID, "Pillow Cases King", 12))

	rec := doJSON(t, r, http.MethodPut, "/api/items/Pillow%20Cases%20King", map[string]string{"name": "Pillowcases King"})
	require.Equal(t, http.StatusOK, rec.Code)

	var items []string
	decodeField(t, rec, "items", &items)
	assert.Contains(t, items, "Pillowcases King")
	assert.NotContains(t, items, "Pillow Cases King")

	got, ok, err := ledger.Day(ctx, day.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]int{"Pillowcases King": 12}, got.Inventory)
}

func TestRenameItemErrors(t *testing.T) {
	r, ledger := setupHandlerTest(t)
	ctx := context.Background()

	day, err := ledger.CreateDay(ctx)
	require.NoError(t, err)
	require.NoError(t, ledger.UpdateInventoryItem(ctx, day.ID, "Bath Towel", 3))
	require.NoError(t, ledger.UpdateInventoryItem(ctx, day.ID, "Old Towels", 1))

	tests := []struct {
		name   string
		path   string
		target string
		status int
	}{
		{name: "unknown item", path: "/api/items/Ghost", target: "Spirit", status: http.StatusNotFound},
		{name: "target exists", path: "/api/items/Bath%20Towel", target: "Hand Towel", status: http.StatusConflict},
		{name: "day holds both", path: "/api/items/Bath%20Towel", target: "Old Towels", status: http.StatusConflict},
		{name: "blank target", path: "/api/items/Bath%20Towel", target: "  ", status: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPut, tc.path, map[string]string{"name": tc.target})
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}

	got, _, err := ledger.Day(ctx, day.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Bath Towel": 3, "Old Towels": 1}, got.Inventory)
}

func TestDeleteItemKeepsHistory(t *testing.T) {
	r, ledger := setupHandlerTest(t)
	ctx := context.Background()

	day, err := ledger.CreateDay(ctx)
	require.NoError(t, err)
	require.NoError(t, ledger.UpdateInventoryItem(ctx, day.ID, "Bathmat", 7))

	rec := doJSON(t, r, http.MethodDelete, "/api/items/Bathmat", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items, err := ledger.MasterList(ctx)
	require.NoError(t, err)
	assert.NotContains(t, items, "Bathmat")

	got, _, err := ledger.Day(ctx, day.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Inventory["Bathmat"])
}

func TestStorageFailureIsInternalError(t *testing.T) {
	medium := storage.NewMemory()
	newTestLedger(t, medium)

	ledger := service.NewLedgerService(brokenMedium{Medium: medium})
	r := newTestEngine(NewAPI(ledger, zap.NewNop(), ""))

	rec := doJSON(t, r, http.MethodPost, "/api/items", map[string]string{"name": "Bath Robes"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var message string
	decodeField(t, rec, "error", &message)
	assert.Equal(t, "添加物品失败", message)

	items, err := ledger.MasterList(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, items, "Bath Robes")
}
