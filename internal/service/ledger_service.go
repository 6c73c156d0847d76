package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linenlog/internal/db"
	"github.com/linenlog/internal/storage"
	"go.uber.org/zap"
)

// rejection 表示校验失败：调用方可以向用户展示，账本未发生任何修改。
type rejection struct {
	msg string
}

func (r *rejection) Error() string {
	return r.msg
}

var (
	ErrItemNameRequired = &rejection{"item name is required"}
	ErrItemExists       = &rejection{"item already exists"}
	ErrItemNotFound     = &rejection{"item not found"}
	// ErrRenameCollision 在某个 Day 同时持有新旧两个名称时返回，整个重命名被拒绝
	ErrRenameCollision  = &rejection{"rename target already recorded on a day"}
	ErrInvalidDayNumber = &rejection{"day number must be positive"}
	ErrDayNumberTaken   = &rejection{"day number already in use"}
	ErrInvalidQuantity  = &rejection{"quantity must not be negative"}
)

// ErrCorruptLedger 表示存储介质中的数据无法解析。
var ErrCorruptLedger = errors.New("ledger data is corrupt")

// Rejected 判断 err 是否为校验失败（而非持久化失败）。
func Rejected(err error) bool {
	var r *rejection
	return errors.As(err, &r)
}

// Day 是某一天的库存快照。
type Day struct {
	ID        string         `json:"id" yaml:"id"`
	Number    int            `json:"number" yaml:"number"`
	Date      time.Time      `json:"date" yaml:"date"`
	Inventory map[string]int `json:"inventory" yaml:"inventory"`
}

// DayPatch 描述 UpdateDay 需要合并的字段，nil 表示不修改。
type DayPatch struct {
	Number    *int
	Date      *time.Time
	Inventory map[string]int
}

// LedgerService 是账本的唯一写入口，负责 Day 与物品主清单两张表。
// 每个公开方法在互斥锁内完成 读取-修改-写回，写入失败时不会报告成功。
type LedgerService struct {
	mu        sync.Mutex
	medium    storage.Medium
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// LedgerOption 用于定制 LedgerService。
type LedgerOption func(*LedgerService)

// WithLogger 设置日志记录器。
func WithLogger(logger *zap.Logger) LedgerOption {
	return func(s *LedgerService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock 替换时间来源，主要面向测试场景。
func WithClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator 替换 Day ID 生成器。
func WithIDGenerator(newID func() string) LedgerOption {
	return func(s *LedgerService) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewLedgerService 构造 LedgerService。
func NewLedgerService(medium storage.Medium, opts ...LedgerOption) *LedgerService {
	s := &LedgerService{
		medium:    medium,
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init 在首次使用时写入默认物品清单、空 Day 表与旧版计数器。
// 判断依据是“是否写入过”，已存在的值（即使为空列表）不会被覆盖。
func (s *LedgerService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, itemsFound, err := s.loadMasterList(ctx)
	if err != nil {
		return err
	}
	days, daysFound, err := s.loadDays(ctx)
	if err != nil {
		return err
	}
	_, counterFound, err := s.loadCounter(ctx)
	if err != nil {
		return err
	}

	var seeds []storage.Entry
	if !itemsFound {
		entry, err := encodeEntry(db.KeyMasterItems, DefaultCatalog())
		if err != nil {
			return err
		}
		seeds = append(seeds, entry)
	}
	if !daysFound {
		entry, err := encodeEntry(db.KeyDays, []Day{})
		if err != nil {
			return err
		}
		seeds = append(seeds, entry)
	}
	if !counterFound {
		entry, err := encodeEntry(db.KeyNextDayNumber, nextDayNumber(days))
		if err != nil {
			return err
		}
		seeds = append(seeds, entry)
	}

	if len(seeds) == 0 {
		return nil
	}
	if err := s.persist(ctx, "seed ledger", seeds...); err != nil {
		return err
	}
	s.logger.Info("ledger initialized", zap.Int("seeded_keys", len(seeds)))
	return nil
}

// Snapshot 汇总两张表的完整内容，用于导出。
type Snapshot struct {
	MasterItems []string `json:"master_items" yaml:"master_items"`
	Days        []Day    `json:"days" yaml:"days"`
}

// Snapshot 返回账本的完整副本。
func (s *LedgerService) Snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, _, err := s.loadMasterList(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	days, _, err := s.loadDays(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{MasterItems: items, Days: days}, nil
}

func (s *LedgerService) loadMasterList(ctx context.Context) ([]string, bool, error) {
	raw, found, err := s.medium.Load(ctx, db.KeyMasterItems)
	if err != nil {
		return nil, false, fmt.Errorf("load master items: %w", err)
	}
	if !found {
		return DefaultCatalog(), false, nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, true, fmt.Errorf("%w: %s: %v", ErrCorruptLedger, db.KeyMasterItems, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, true, nil
}

func (s *LedgerService) loadDays(ctx context.Context) ([]Day, bool, error) {
	raw, found, err := s.medium.Load(ctx, db.KeyDays)
	if err != nil {
		return nil, false, fmt.Errorf("load days: %w", err)
	}
	if !found {
		return []Day{}, false, nil
	}

	var days []Day
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, true, fmt.Errorf("%w: %s: %v", ErrCorruptLedger, db.KeyDays, err)
	}
	if days == nil {
		days = []Day{}
	}
	for i := range days {
		if days[i].Inventory == nil {
			days[i].Inventory = map[string]int{}
		}
	}
	return days, true, nil
}

// loadCounter 兼容旧数据中以字符串保存的 "1"。
func (s *LedgerService) loadCounter(ctx context.Context) (int, bool, error) {
	raw, found, err := s.medium.Load(ctx, db.KeyNextDayNumber)
	if err != nil {
		return 0, false, fmt.Errorf("load day counter: %w", err)
	}
	if !found {
		return 0, false, nil
	}

	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %s: %v", ErrCorruptLedger, db.KeyNextDayNumber, err)
	}
	return value, true, nil
}

func (s *LedgerService) persist(ctx context.Context, op string, entries ...storage.Entry) error {
	if err := s.medium.Save(ctx, entries...); err != nil {
		s.logger.Error("ledger write failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func encodeEntry(key string, value any) (storage.Entry, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return storage.Entry{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return storage.Entry{Key: key, Value: raw}, nil
}

// normalizeItemName 只去除首尾空白，名称本身原样保存。
func normalizeItemName(name string) string {
	return strings.TrimSpace(name)
}

func indexOf(items []string, name string) int {
	for i, item := range items {
		if item == name {
			return i
		}
	}
	return -1
}

func cloneDay(day Day) Day {
	out := day
	out.Inventory = make(map[string]int, len(day.Inventory))
	for key, qty := range day.Inventory {
		out.Inventory[key] = qty
	}
	return out
}

func cloneDays(days []Day) []Day {
	out := make([]Day, 0, len(days))
	for _, day := range days {
		out = append(out, cloneDay(day))
	}
	return out
}
