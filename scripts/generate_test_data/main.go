package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/linenlog/internal/app"
	"github.com/linenlog/internal/config"
	"github.com/linenlog/internal/service"
	"go.uber.org/zap"
)

// 测试数据生成器
func main() {
	var days int
	var seed int64
	flag.IntVar(&days, "days", 7, "要生成的天数")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "随机种子")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("读取 .env 失败:", err)
	}
	cfg := config.Load()

	ctx := context.Background()
	ledger, medium, err := app.OpenLedger(ctx, cfg, zap.NewNop())
	if err != nil {
		log.Fatal("账本初始化失败:", err)
	}
	defer medium.Close()

	fmt.Println("开始生成测试数据...")
	created, err := generateDays(ctx, ledger, rand.New(rand.NewSource(seed)), days, time.Now())
	if err != nil {
		log.Fatal("生成测试数据失败:", err)
	}

	for _, day := range created {
		fmt.Printf("✅ Day %d (%s)\n", day.Number, day.Date.Format("2006-01-02"))
	}
	fmt.Println("测试数据生成完成！")
}

// generateDays 为最近 n 天各建一条记录，按主清单随机填入数量，最早的一天最先创建。
func generateDays(ctx context.Context, ledger *service.LedgerService, rng *rand.Rand, n int, today time.Time) ([]service.Day, error) {
	items, err := ledger.MasterList(ctx)
	if err != nil {
		return nil, err
	}

	created := make([]service.Day, 0, n)
	for i := n - 1; i >= 0; i-- {
		day, err := ledger.CreateDay(ctx)
		if err != nil {
			return nil, err
		}

		date := service.NoonOf(today.AddDate(0, 0, -i))
		inventory := make(map[string]int, len(items))
		for _, item := range items {
			inventory[item] = rng.Intn(60)
		}

		updated, _, err := ledger.UpdateDay(ctx, day.ID, service.DayPatch{Date: &date, Inventory: inventory})
		if err != nil {
			return nil, err
		}
		created = append(created, updated)
	}
	return created, nil
}
