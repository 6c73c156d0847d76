package service

import (
	"context"
	"strings"
	"time"

	"github.com/linenlog/internal/db"
	"go.uber.org/zap"
)

// Days 返回全部 Day，最新创建的在前；结果与账本互不影响。
func (s *LedgerService) Days(ctx context.Context) ([]Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, _, err := s.loadDays(ctx)
	if err != nil {
		return nil, err
	}
	return cloneDays(days), nil
}

// Day 根据 ID 查找，ok=false 表示不存在。
func (s *LedgerService) Day(ctx context.Context, id string) (Day, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, _, err := s.loadDays(ctx)
	if err != nil {
		return Day{}, false, err
	}
	idx := findDay(days, id)
	if idx < 0 {
		return Day{}, false, nil
	}
	return cloneDay(days[idx]), true, nil
}

// CreateDay 新建 Day：序号为现有最大序号 +1，日期为当前时间，库存为空。
func (s *LedgerService) CreateDay(ctx context.Context) (Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, _, err := s.loadDays(ctx)
	if err != nil {
		return Day{}, err
	}

	day := Day{
		ID:        s.newID(),
		Number:    nextDayNumber(days),
		Date:      s.now(),
		Inventory: map[string]int{},
	}
	days = append([]Day{day}, days...)

	daysEntry, err := encodeEntry(db.KeyDays, days)
	if err != nil {
		return Day{}, err
	}
	counterEntry, err := encodeEntry(db.KeyNextDayNumber, day.Number+1)
	if err != nil {
		return Day{}, err
	}
	if err := s.persist(ctx, "create day", daysEntry, counterEntry); err != nil {
		return Day{}, err
	}

	s.logger.Debug("day created", zap.String("id", day.ID), zap.Int("number", day.Number))
	return cloneDay(day), nil
}

// UpdateDay 只合并 patch 中提供的字段；ID 不存在时 ok=false。
func (s *LedgerService) UpdateDay(ctx context.Context, id string, patch DayPatch) (Day, bool, error) {
	if patch.Number != nil && *patch.Number <= 0 {
		return Day{}, false, ErrInvalidDayNumber
	}
	for name, qty := range patch.Inventory {
		if strings.TrimSpace(name) == "" {
			return Day{}, false, ErrItemNameRequired
		}
		if qty < 0 {
			return Day{}, false, ErrInvalidQuantity
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateDayLocked(ctx, id, func(day *Day, days []Day) error {
		if patch.Number != nil {
			for _, other := range days {
				if other.ID != day.ID && other.Number == *patch.Number {
					return ErrDayNumberTaken
				}
			}
			day.Number = *patch.Number
		}
		if patch.Date != nil {
			day.Date = *patch.Date
		}
		if patch.Inventory != nil {
			inventory := make(map[string]int, len(patch.Inventory))
			for name, qty := range patch.Inventory {
				inventory[name] = qty
			}
			day.Inventory = inventory
		}
		return nil
	})
}

// UpdateInventoryItem 设置某个 Day 中物品的数量。数量为 0 时保留该键；
// 不做截断，负数直接拒绝。Day 不存在时什么也不做。
func (s *LedgerService) UpdateInventoryItem(ctx context.Context, dayID, itemName string, quantity int) error {
	if strings.TrimSpace(itemName) == "" {
		return ErrItemNameRequired
	}
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _, err := s.updateDayLocked(ctx, dayID, func(day *Day, _ []Day) error {
		day.Inventory[itemName] = quantity
		return nil
	})
	return err
}

// AdjustInventoryItem 在当前数量上加减 delta，结果小于 0 时按 0 保存。
func (s *LedgerService) AdjustInventoryItem(ctx context.Context, dayID, itemName string, delta int) (int, bool, error) {
	if strings.TrimSpace(itemName) == "" {
		return 0, false, ErrItemNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var quantity int
	_, ok, err := s.updateDayLocked(ctx, dayID, func(day *Day, _ []Day) error {
		quantity = max(0, day.Inventory[itemName]+delta)
		day.Inventory[itemName] = quantity
		return nil
	})
	if err != nil || !ok {
		return 0, ok, err
	}
	return quantity, true, nil
}

// DeleteDay 删除 Day，重复调用无副作用。
func (s *LedgerService) DeleteDay(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, _, err := s.loadDays(ctx)
	if err != nil {
		return err
	}
	idx := findDay(days, id)
	if idx < 0 {
		return nil
	}

	days = append(days[:idx], days[idx+1:]...)
	entry, err := encodeEntry(db.KeyDays, days)
	if err != nil {
		return err
	}
	if err := s.persist(ctx, "delete day", entry); err != nil {
		return err
	}

	s.logger.Debug("day deleted", zap.String("id", id))
	return nil
}

// updateDayLocked 读取 Day 表、对目标记录执行 mutate 并写回整张表。调用方需持有锁。
func (s *LedgerService) updateDayLocked(ctx context.Context, id string, mutate func(day *Day, days []Day) error) (Day, bool, error) {
	days, _, err := s.loadDays(ctx)
	if err != nil {
		return Day{}, false, err
	}
	idx := findDay(days, id)
	if idx < 0 {
		return Day{}, false, nil
	}

	if err := mutate(&days[idx], days); err != nil {
		return Day{}, false, err
	}

	entry, err := encodeEntry(db.KeyDays, days)
	if err != nil {
		return Day{}, false, err
	}
	if err := s.persist(ctx, "update day", entry); err != nil {
		return Day{}, false, err
	}
	return cloneDay(days[idx]), true, nil
}

func findDay(days []Day, id string) int {
	for i, day := range days {
		if day.ID == id {
			return i
		}
	}
	return -1
}

func nextDayNumber(days []Day) int {
	highest := 0
	for _, day := range days {
		if day.Number > highest {
			highest = day.Number
		}
	}
	return highest + 1
}

// NoonOf 将时间固定在所在日期的中午，避免时区换算导致日期偏移。
func NoonOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// ParseDayDate 解析 YYYY-MM-DD，并锚定到本地时间中午。
func ParseDayDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return NoonOf(parsed), nil
}

const dateLayout = "2006-01-02"
