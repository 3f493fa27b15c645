package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storefront/internal/models"

	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

// ProductCache caches product reads in Redis with a TTL. All methods are
// nil-safe and best-effort: a nil cache or an unreachable Redis degrades
// to a miss, never to an error for the caller.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache creates a product cache on an existing Redis client.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}

func productKey(id string) string {
	return "product:" + id
}

func listKey(suffix string) string {
	return "products:list:" + suffix
}

// GetProduct returns the cached product and whether it was found.
func (c *ProductCache) GetProduct(id string) (*models.Product, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, false
	}
	return &product, true
}

// SetProduct stores a product with the configured TTL.
func (c *ProductCache) SetProduct(product *models.Product) {
	if c == nil || c.client == nil || product == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productKey(product.ID), data, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache product %s: %v", product.ID, err)
	}
}

// GetList returns a cached product list for the given key suffix.
func (c *ProductCache) GetList(suffix string) ([]models.Product, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, listKey(suffix)).Bytes()
	if err != nil {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetList stores a product list with the configured TTL.
func (c *ProductCache) SetList(suffix string, products []models.Product) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKey(suffix), data, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache product list %s: %v", suffix, err)
	}
}

// Invalidate drops a product and every cached list after a write.
func (c *ProductCache) Invalidate(id string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		log.Printf("Failed to invalidate product %s: %v", id, err)
	}
	// SCAN instead of KEYS so invalidation never blocks the server on a
	// large keyspace.
	iter := c.client.Scan(ctx, 0, listKey("*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("Failed to scan product list keys: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate product lists: %v", err)
	}
}
