package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	reportMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Table),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	reportSanitizer = bluemonday.UGCPolicy()
)

// SheetRow 为盘点表中的一行。
type SheetRow struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// Report 是单个 Day 的盘点报告。
type Report struct {
	Day      Day
	Markdown string
	HTML     string
}

// DaySheet 按主清单顺序列出 Day 中每个物品的数量，未记录的物品为 0。
func (s *LedgerService) DaySheet(ctx context.Context, id string) ([]SheetRow, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, items, ok, err := s.dayWithItems(ctx, id)
	if err != nil || !ok {
		return nil, ok, err
	}
	return buildSheet(day, items), true, nil
}

// DayReport 生成 Day 的 Markdown 报告并渲染为经过清洗的 HTML。
// 已从清单删除但仍有历史数量的物品单独列出。
func (s *LedgerService) DayReport(ctx context.Context, id string) (Report, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, items, ok, err := s.dayWithItems(ctx, id)
	if err != nil || !ok {
		return Report{}, ok, err
	}

	markdown := buildReportMarkdown(day, buildSheet(day, items), orphanRows(day, items))

	var buf bytes.Buffer
	if err := reportMarkdown.Convert([]byte(markdown), &buf); err != nil {
		return Report{}, false, fmt.Errorf("render day report: %w", err)
	}

	return Report{
		Day:      cloneDay(day),
		Markdown: markdown,
		HTML:     string(reportSanitizer.SanitizeBytes(buf.Bytes())),
	}, true, nil
}

func (s *LedgerService) dayWithItems(ctx context.Context, id string) (Day, []string, bool, error) {
	days, _, err := s.loadDays(ctx)
	if err != nil {
		return Day{}, nil, false, err
	}
	idx := findDay(days, id)
	if idx < 0 {
		return Day{}, nil, false, nil
	}
	items, _, err := s.loadMasterList(ctx)
	if err != nil {
		return Day{}, nil, false, err
	}
	return days[idx], items, true, nil
}

func buildSheet(day Day, items []string) []SheetRow {
	rows := make([]SheetRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, SheetRow{Item: item, Quantity: day.Inventory[item]})
	}
	return rows
}

func orphanRows(day Day, items []string) []SheetRow {
	listed := make(map[string]struct{}, len(items))
	for _, item := range items {
		listed[item] = struct{}{}
	}

	var rows []SheetRow
	for item, qty := range day.Inventory {
		if _, ok := listed[item]; ok {
			continue
		}
		rows = append(rows, SheetRow{Item: item, Quantity: qty})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Item < rows[j].Item })
	return rows
}

func buildReportMarkdown(day Day, sheet, orphans []SheetRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Day %d\n\n", day.Number)
	fmt.Fprintf(&b, "Date: %s\n\n", day.Date.Local().Format(dateLayout))
	writeReportTable(&b, sheet)

	if len(orphans) > 0 {
		b.WriteString("\n## Historical items\n\n")
		writeReportTable(&b, orphans)
	}
	return b.String()
}

func writeReportTable(b *strings.Builder, rows []SheetRow) {
	b.WriteString("| Item | Quantity |\n| --- | ---: |\n")
	total := 0
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %d |\n", escapeTableCell(row.Item), row.Quantity)
		total += row.Quantity
	}
	fmt.Fprintf(b, "| **Total** | **%d** |\n", total)
}

func escapeTableCell(value string) string {
	return strings.ReplaceAll(value, "|", `\|`)
}
