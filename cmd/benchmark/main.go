package main

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"lightning-exchange/booker"
	"lightning-exchange/domain"
	"lightning-exchange/orderbook"
	"lightning-exchange/reporter"
	"lightning-exchange/validator"
)

func main() {
	fmt.Println("=== booker 撮合吞吐量测试 ===")

	// 测试参数
	testDuration := 5 * time.Second
	numCPU := runtime.NumCPU()
	numWorkers := numCPU - 2 // 1 个给 GC，1 个给主 goroutine
	if numWorkers < 1 {
		numWorkers = 1
	}

	var orderCount atomic.Int64

	fmt.Printf("CPU 核心数: %d\n", numCPU)
	fmt.Printf("生产者数量: %d (NumCPU - 2)\n", numWorkers)
	fmt.Printf("测试时长: %v\n\n", testDuration)

	startTime := time.Now()
	stopChan := make(chan struct{})

	// booker.Shard 不是并发安全的 -- 每个 worker 拥有自己的 shard 和
	// symbol，这正是真实部署按 symbol 哈希分片到独立 goroutine 的方式。
	for w := 0; w < numWorkers; w++ {
		go func(workerID int) {
			shard := booker.New(orderbook.HashMapList, reporter.NopSink{}, validator.New(), true)
			symbol := fmt.Sprintf("60%04d", workerID)
			var uniqueID int64
			for {
				select {
				case <-stopChan:
					return
				default:
					uniqueID++
					side := domain.SideBuy
					price := int64(50000 + uniqueID%200)
					if uniqueID%2 != 0 {
						side = domain.SideSell
					}
					order := domain.NewOrder(uniqueID, symbol, side, domain.OrderTypeLimit, price, 1, 93000000+uniqueID)
					shard.Add(order)
					orderCount.Add(1)
				}
			}
		}(w)
	}

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			elapsed := time.Since(startTime)
			orders := orderCount.Load()
			qps := float64(orders) / elapsed.Seconds()
			fmt.Printf("[%.0fs] 订单: %d (%.0f/s)\n", elapsed.Seconds(), orders, qps)
		}
	}()

	time.Sleep(testDuration)
	close(stopChan)
	ticker.Stop()
	time.Sleep(200 * time.Millisecond)

	elapsed := time.Since(startTime)
	totalOrders := orderCount.Load()
	qps := float64(totalOrders) / elapsed.Seconds()

	fmt.Println("\n=== 测试结果 ===")
	fmt.Printf("测试时长:   %v\n", elapsed)
	fmt.Printf("总订单数:   %d\n", totalOrders)
	fmt.Printf("订单吞吐量: %.0f orders/sec\n", qps)
}
