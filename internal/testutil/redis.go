package testutil

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTestRedisAddr = "localhost:6379"
	defaultTestRedisDB   = 15
	// testKeyPattern matches every key the console writes.
	testKeyPattern = "fleet:*"
)

// SetupTestRedis returns a client on the test database with the console's
// keys removed. REDIS_ADDR and TEST_REDIS_DB override the defaults. The test
// is skipped when Redis does not answer, unless TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = defaultTestRedisAddr
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: testRedisDB(t)})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if requireRedis() {
			t.Fatalf("redis not available at %s: %v", addr, err)
		}
		t.Skipf("redis not available at %s: %v", addr, err)
	}

	if err := clearKeys(ctx, client); err != nil {
		t.Fatalf("clear test keys: %v", err)
	}
	return client
}

func testRedisDB(t TestingTB) int {
	v := os.Getenv("TEST_REDIS_DB")
	if v == "" {
		return defaultTestRedisDB
	}
	db, err := strconv.Atoi(v)
	if err != nil || db < 0 {
		t.Logf("ignoring TEST_REDIS_DB=%q", v)
		return defaultTestRedisDB
	}
	return db
}

func clearKeys(ctx context.Context, client *redis.Client) error {
	iter := client.Scan(ctx, 0, testKeyPattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
