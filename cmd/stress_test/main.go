// Command stress_test fires concurrent single-item placements at a MySQL
// backed engine and verifies that exactly initialStock of them succeed.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"shoporder/internal/adapter/storage"
	"shoporder/internal/core/domain"
	"shoporder/internal/core/service"
)

const (
	productID     = "stress-test-item"
	initialStock  = 20
	totalRequests = 50
)

func main() {
	ctx := context.Background()

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/shoporder?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("failed to open mysql: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(50)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}

	// Reset test data
	if _, err := db.ExecContext(ctx, `DELETE FROM order_items WHERE product_id = ?`, productID); err != nil {
		log.Fatalf("failed to clear order items: %v", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, stock) VALUES (?, 'Stress Test Item', 9.99, ?)
		ON DUPLICATE KEY UPDATE stock = ?`, productID, initialStock, initialStock)
	if err != nil {
		log.Fatalf("failed to seed product: %v", err)
	}

	store := storage.NewMySQLAdapter(db)
	orderService := service.NewOrderService(store, nil, nil, nil)

	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			_, err := orderService.PlaceOrder(ctx, domain.PlaceOrderRequest{
				CustomerName: fmt.Sprintf("customer-%d", id),
				OrderDate:    time.Now(),
				Items:        []domain.LineItem{{ProductID: productID, Quantity: 1}},
			})
			if err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", initialStock)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if success == int32(initialStock) && fail == int32(totalRequests-initialStock) {
		fmt.Printf("PASS: Exactly %d orders succeeded, %d rejected\n", initialStock, totalRequests-initialStock)
	} else {
		fmt.Printf("FAIL: Expected %d success/%d fail, got %d/%d\n",
			initialStock, totalRequests-initialStock, success, fail)
	}

	var finalStock int
	if err := db.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = ?`, productID).Scan(&finalStock); err != nil {
		log.Fatalf("failed to read final stock: %v", err)
	}
	fmt.Printf("Final Stock: %d\n", finalStock)

	if finalStock == 0 {
		fmt.Println("PASS: Stock depleted to 0")
	} else {
		fmt.Printf("FAIL: Expected stock 0, got %d\n", finalStock)
	}
}
