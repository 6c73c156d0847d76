package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/linenlog/internal/db"
)

func TestCreateDayUsesMaxPlusOne(t *testing.T) {
	svc, medium := setupLedger(t)
	ctx := context.Background()
	seedDays(t, medium, []Day{{ID: "b", Number: 3}, {ID: "a", Number: 1}})

	day, err := svc.CreateDay(ctx)
	if err != nil {
		t.Fatalf("create day: %v", err)
	}
	if day.Number != 4 {
		t.Fatalf("expected number 4, got %d", day.Number)
	}
	if !day.Date.Equal(fixedNow) {
		t.Fatalf("expected date %v, got %v", fixedNow, day.Date)
	}
	if day.Inventory == nil || len(day.Inventory) != 0 {
		t.Fatalf("expected empty inventory, got %v", day.Inventory)
	}

	days, _ := svc.Days(ctx)
	if days[0].ID != day.ID {
		t.Fatalf("expected new day first, got %s", days[0].ID)
	}

	raw, _, _ := medium.Load(ctx, db.KeyNextDayNumber)
	if string(raw) != "5" {
		t.Fatalf("expected legacy counter 5, got %q", raw)
	}
}

func TestCreateDayAfterDeletingHighestReusesNumber(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	first, _ := svc.CreateDay(ctx)
	second, _ := svc.CreateDay(ctx)
	if err := svc.DeleteDay(ctx, second.ID); err != nil {
		t.Fatalf("delete day: %v", err)
	}

	third, err := svc.CreateDay(ctx)
	if err != nil {
		t.Fatalf("create day: %v", err)
	}
	if first.Number != 1 || third.Number != 2 {
		t.Fatalf("expected numbers 1 and 2, got %d and %d", first.Number, third.Number)
	}
	if third.ID == second.ID {
		t.Fatalf("expected a fresh id")
	}
}

func TestDaysReturnsIndependentCopies(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()
	day, _ := svc.CreateDay(ctx)

	days, _ := svc.Days(ctx)
	days[0].Number = 99
	days[0].Inventory["Robe"] = 42

	stored, _, _ := svc.Day(ctx, day.ID)
	if stored.Number != 1 || len(stored.Inventory) != 0 {
		t.Fatalf("mutating the result leaked into the ledger: %+v", stored)
	}
}

func TestDayUnknownIDIsAbsent(t *testing.T) {
	svc, _ := setupLedger(t)

	_, ok, err := svc.Day(context.Background(), "missing")
	if err != nil || ok {
		t.Fatalf("expected absent without error, got ok=%v err=%v", ok, err)
	}
}

func TestUpdateDayMergesOnlySuppliedFields(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()
	day, _ := svc.CreateDay(ctx)
	if err := svc.UpdateInventoryItem(ctx, day.ID, "Robe", 2); err != nil {
		t.Fatalf("update inventory: %v", err)
	}

	number := 7
	updated, ok, err := svc.UpdateDay(ctx, day.ID, DayPatch{Number: &number})
	if err != nil || !ok {
		t.Fatalf("update day: ok=%v err=%v", ok, err)
	}
	if updated.Number != 7 || !updated.Date.Equal(fixedNow) || updated.Inventory["Robe"] != 2 {
		t.Fatalf("unexpected merge result: %+v", updated)
	}

	date := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	updated, _, err = svc.UpdateDay(ctx, day.ID, DayPatch{Date: &date, Inventory: map[string]int{"Blanket": 1}})
	if err != nil {
		t.Fatalf("update day: %v", err)
	}
	if updated.Number != 7 || !updated.Date.Equal(date) {
		t.Fatalf("unexpected merge result: %+v", updated)
	}
	if diff := cmp.Diff(map[string]int{"Blanket": 1}, updated.Inventory); diff != "" {
		t.Fatalf("unexpected inventory (-want +got):\n%s", diff)
	}

	stored, _, _ := svc.Day(ctx, day.ID)
	if diff := cmp.Diff(updated, stored); diff != "" {
		t.Fatalf("update not persisted (-returned +stored):\n%s", diff)
	}
}

func TestUpdateDayUnknownID(t *testing.T) {
	svc, _ := setupLedger(t)
	number := 3

	_, ok, err := svc.UpdateDay(context.Background(), "missing", DayPatch{Number: &number})
	if err != nil || ok {
		t.Fatalf("expected absent without error, got ok=%v err=%v", ok, err)
	}
}

func TestUpdateDayValidation(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()
	first, _ := svc.CreateDay(ctx)
	second, _ := svc.CreateDay(ctx)

	zero := 0
	taken := first.Number
	tests := []struct {
		name  string
		patch DayPatch
		want  error
	}{
		{name: "non positive number", patch: DayPatch{Number: &zero}, want: ErrInvalidDayNumber},
		{name: "number of another day", patch: DayPatch{Number: &taken}, want: ErrDayNumberTaken},
		{name: "negative quantity", patch: DayPatch{Inventory: map[string]int{"Robe": -1}}, want: ErrInvalidQuantity},
		{name: "blank item", patch: DayPatch{Inventory: map[string]int{" ": 1}}, want: ErrItemNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.UpdateDay(ctx, second.ID, tt.patch)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	stored, _, _ := svc.Day(ctx, second.ID)
	if stored.Number != second.Number || len(stored.Inventory) != 0 {
		t.Fatalf("rejected patches must not mutate the day: %+v", stored)
	}

	own := second.Number
	if _, ok, err := svc.UpdateDay(ctx, second.ID, DayPatch{Number: &own}); err != nil || !ok {
		t.Fatalf("expected keeping its own number to succeed, got ok=%v err=%v", ok, err)
	}
}

func TestUpdateInventoryItemKeepsExplicitZero(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()
	day, _ := svc.CreateDay(ctx)

	if err := svc.UpdateInventoryItem(ctx, day.ID, "Robe", 7); err != nil {
		t.Fatalf("update inventory: %v", err)
	}
	got, _, _ := svc.Day(ctx, day.ID)
	if got.Inventory["Robe"] != 7 {
		t.Fatalf("expected Robe=7, got %v", got.Inventory)
	}

	if err := svc.UpdateInventoryItem(ctx, day.ID, "Robe", 0); err != nil {
		t.Fatalf("update inventory: %v", err)
	}
	got, _, _ = svc.Day(ctx, day.ID)
	qty, present := got.Inventory["Robe"]
	if !present || qty != 0 {
		t.Fatalf("expected explicit Robe=0 to be kept, got present=%v qty=%d", present, qty)
	}
}

func TestUpdateInventoryItemRejectsNegative(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()
	day, _ := svc.CreateDay(ctx)

	if err := svc.UpdateInventoryItem(ctx, day.ID, "Robe", -2); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestUpdateInventoryItemUnknownDayIsNoop(t *testing.T) {
	svc, medium := setupLedger(t)
	ctx := context.Background()
	before, _, _ := medium.Load(ctx, db.KeyDays)

	if err := svc.UpdateInventoryItem(ctx, "missing", "Robe", 1); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}

	after, _, _ := medium.Load(ctx, db.KeyDays)
	if string(before) != string(after) {
		t.Fatalf("expected days table to be unchanged")
	}
}

func TestAdjustInventoryItemClampsAtZero(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()
	day, _ := svc.CreateDay(ctx)

	qty, ok, err := svc.AdjustInventoryItem(ctx, day.ID, "Bathmat", 3)
	if err != nil || !ok || qty != 3 {
		t.Fatalf("expected 3, got qty=%d ok=%v err=%v", qty, ok, err)
	}
	qty, _, _ = svc.AdjustInventoryItem(ctx, day.ID, "Bathmat", -5)
	if qty != 0 {
		t.Fatalf("expected clamp to 0, got %d", qty)
	}

	got, _, _ := svc.Day(ctx, day.ID)
	if v, present := got.Inventory["Bathmat"]; !present || v != 0 {
		t.Fatalf("expected stored Bathmat=0, got %v", got.Inventory)
	}

	if _, ok, err := svc.AdjustInventoryItem(ctx, "missing", "Bathmat", 1); ok || err != nil {
		t.Fatalf("expected absent day, got ok=%v err=%v", ok, err)
	}
}

func TestDeleteDayIsIdempotent(t *testing.T) {
	svc, medium := setupLedger(t)
	ctx := context.Background()
	keep, _ := svc.CreateDay(ctx)
	drop, _ := svc.CreateDay(ctx)

	if err := svc.DeleteDay(ctx, drop.ID); err != nil {
		t.Fatalf("delete day: %v", err)
	}
	once, _, _ := medium.Load(ctx, db.KeyDays)

	if err := svc.DeleteDay(ctx, drop.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	twice, _, _ := medium.Load(ctx, db.KeyDays)

	if string(once) != string(twice) {
		t.Fatalf("second delete changed the table")
	}
	days, _ := svc.Days(ctx)
	if len(days) != 1 || days[0].ID != keep.ID {
		t.Fatalf("unexpected remaining days: %+v", days)
	}
}

func TestParseDayDateAnchorsNoon(t *testing.T) {
	got, err := ParseDayDate(" 2026-02-28 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Hour() != 12 || got.Day() != 28 || got.Month() != time.February || got.Location() != time.Local {
		t.Fatalf("unexpected anchored date: %v", got)
	}

	if _, err := ParseDayDate("28/02/2026"); err == nil {
		t.Fatalf("expected invalid layout to fail")
	}
}

func TestDaySheetFollowsMasterOrder(t *testing.T) {
	svc, medium := setupLedger(t)
	ctx := context.Background()
	seedDays(t, medium, []Day{{ID: "d1", Number: 1, Inventory: map[string]int{"Robe": 4, "Towel": 9}}})

	rows, ok, err := svc.DaySheet(ctx, "d1")
	if err != nil || !ok {
		t.Fatalf("day sheet: ok=%v err=%v", ok, err)
	}
	if len(rows) != 24 {
		t.Fatalf("expected one row per master item, got %d", len(rows))
	}
	if rows[0].Item != "Flat Sheets King" || rows[0].Quantity != 0 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[7].Item != "Robe" || rows[7].Quantity != 4 {
		t.Fatalf("unexpected robe row: %+v", rows[7])
	}

	if _, ok, _ := svc.DaySheet(ctx, "missing"); ok {
		t.Fatalf("expected missing day to be absent")
	}
}

func TestDayReportRendersSanitizedHTML(t *testing.T) {
	svc, medium := setupLedger(t)
	ctx := context.Background()
	seedDays(t, medium, []Day{{
		ID:        "d1",
		Number:    3,
		Date:      time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Inventory: map[string]int{"Robe": 4, "Bath Towel": 6, "<img src=x onerror=alert(1)>": 1},
	}})

	report, ok, err := svc.DayReport(ctx, "d1")
	if err != nil || !ok {
		t.Fatalf("day report: ok=%v err=%v", ok, err)
	}

	if !strings.HasPrefix(report.Markdown, "# Day 3\n") {
		t.Fatalf("unexpected markdown heading: %q", report.Markdown)
	}
	if !strings.Contains(report.Markdown, "| Robe | 4 |") || !strings.Contains(report.Markdown, "| **Total** | **10** |") {
		t.Fatalf("unexpected markdown table:\n%s", report.Markdown)
	}
	if !strings.Contains(report.Markdown, "## Historical items") {
		t.Fatalf("expected orphaned keys to be listed:\n%s", report.Markdown)
	}
	if !strings.Contains(report.HTML, "<table>") || !strings.Contains(report.HTML, "<h1>Day 3</h1>") {
		t.Fatalf("expected rendered table, got:\n%s", report.HTML)
	}
	if strings.Contains(report.HTML, "onerror") {
		t.Fatalf("expected report HTML to be sanitized, got:\n%s", report.HTML)
	}
}
