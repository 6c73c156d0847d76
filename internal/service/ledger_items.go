package service

import (
	"context"

	"github.com/linenlog/internal/db"
	"github.com/linenlog/internal/storage"
	"go.uber.org/zap"
)

// MasterList 返回物品主清单副本；从未保存过时返回默认清单（不写入）。
func (s *LedgerService) MasterList(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, _, err := s.loadMasterList(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem 将物品追加到清单末尾。
func (s *LedgerService) AddItem(ctx context.Context, name string) error {
	name = normalizeItemName(name)
	if name == "" {
		return ErrItemNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, _, err := s.loadMasterList(ctx)
	if err != nil {
		return err
	}
	if indexOf(items, name) >= 0 {
		return ErrItemExists
	}

	items = append(items, name)
	entry, err := encodeEntry(db.KeyMasterItems, items)
	if err != nil {
		return err
	}
	if err := s.persist(ctx, "add item", entry); err != nil {
		return err
	}

	s.logger.Debug("item added", zap.String("item", name))
	return nil
}

// RenameItem 原位替换清单中的名称，并把所有 Day 中旧名称下的数量迁移到新名称。
// 清单与 Day 表在同一次 Save 中写入。
func (s *LedgerService) RenameItem(ctx context.Context, oldName, newName string) error {
	newName = normalizeItemName(newName)

	s.mu.Lock()
	defer s.mu.Unlock()

	items, _, err := s.loadMasterList(ctx)
	if err != nil {
		return err
	}

	pos := indexOf(items, oldName)
	if pos < 0 {
		return ErrItemNotFound
	}
	if newName == "" {
		return ErrItemNameRequired
	}
	if newName == oldName {
		return nil
	}
	if indexOf(items, newName) >= 0 {
		return ErrItemExists
	}

	days, _, err := s.loadDays(ctx)
	if err != nil {
		return err
	}

	for _, day := range days {
		_, hasOld := day.Inventory[oldName]
		_, hasNew := day.Inventory[newName]
		if hasOld && hasNew {
			return ErrRenameCollision
		}
	}

	touched := 0
	for i := range days {
		qty, ok := days[i].Inventory[oldName]
		if !ok {
			continue
		}
		delete(days[i].Inventory, oldName)
		days[i].Inventory[newName] = qty
		touched++
	}

	items[pos] = newName
	entries := make([]storage.Entry, 0, 2)
	itemsEntry, err := encodeEntry(db.KeyMasterItems, items)
	if err != nil {
		return err
	}
	entries = append(entries, itemsEntry)
	if touched > 0 {
		daysEntry, err := encodeEntry(db.KeyDays, days)
		if err != nil {
			return err
		}
		entries = append(entries, daysEntry)
	}

	if err := s.persist(ctx, "rename item", entries...); err != nil {
		return err
	}

	s.logger.Info("item renamed",
		zap.String("from", oldName),
		zap.String("to", newName),
		zap.Int("days_migrated", touched),
	)
	return nil
}

// DeleteItem 仅从清单中移除名称，历史 Day 中的数量保持不变。
// 名称不存在时视为成功。
func (s *LedgerService) DeleteItem(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, _, err := s.loadMasterList(ctx)
	if err != nil {
		return err
	}

	pos := indexOf(items, name)
	if pos < 0 {
		return nil
	}

	items = append(items[:pos], items[pos+1:]...)
	entry, err := encodeEntry(db.KeyMasterItems, items)
	if err != nil {
		return err
	}
	if err := s.persist(ctx, "delete item", entry); err != nil {
		return err
	}

	s.logger.Debug("item deleted", zap.String("item", name))
	return nil
}
