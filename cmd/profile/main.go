package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"lightning-exchange/booker"
	"lightning-exchange/domain"
	"lightning-exchange/orderbook"
	"lightning-exchange/reporter"
	"lightning-exchange/validator"
)

func main() {
	// 创建 CPU profile 文件
	cpuFile, err := os.Create("cpu.prof")
	if err != nil {
		panic(err)
	}
	defer cpuFile.Close()

	// 启动 CPU profiling
	pprof.StartCPUProfile(cpuFile)
	defer pprof.StopCPUProfile()

	fmt.Println("=== booker 性能分析开始 ===")
	fmt.Println("生成 CPU profile: cpu.prof")

	shard := booker.New(orderbook.HashMapList, reporter.NopSink{}, validator.New(), true)

	const symbol = "600000"
	duration := 10 * time.Second
	startTime := time.Now()

	var uniqueID int64
	for time.Since(startTime) < duration {
		uniqueID++
		side := domain.SideBuy
		price := int64(50000 + uniqueID%200)
		if uniqueID%2 != 0 {
			side = domain.SideSell
		}
		order := domain.NewOrder(uniqueID, symbol, side, domain.OrderTypeLimit, price, 1, 93000000+uniqueID)
		shard.Add(order)
	}

	elapsed := time.Since(startTime)

	fmt.Println("\n=== 性能分析结果 ===")
	fmt.Printf("测试时长: %v\n", elapsed)
	fmt.Printf("处理订单数: %d\n", uniqueID)
	fmt.Printf("订单吞吐量: %.0f orders/sec\n", float64(uniqueID)/elapsed.Seconds())

	fmt.Println("\n分析 CPU profile:")
	fmt.Println("  go tool pprof -http=:8080 cpu.prof")
	fmt.Println("  或者: go tool pprof cpu.prof")
	fmt.Println("  然后输入: top10  (查看前 10 个热点函数)")
	fmt.Println("  然后输入: list <函数名>  (查看具体代码)")
}
