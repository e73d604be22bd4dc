package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	BarangKeyPrefix    = "barang:%d"
	BarangListKey      = "barang:list"
	DashboardStatsKey  = "laporan:dashboard"
	JTIBlacklistPrefix = "blacklist:%s"
)

const (
	BarangTTL    = 5 * time.Minute
	DashboardTTL = 1 * time.Minute
)

func BarangKey(barangID uint) string {
	return fmt.Sprintf(BarangKeyPrefix, barangID)
}

func JTIBlacklistKey(jti string) string {
	return fmt.Sprintf(JTIBlacklistPrefix, jti)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateBarang drops the cached item, the catalogue list and the
// dashboard aggregate, all of which embed stock counts.
func InvalidateBarang(ctx context.Context, barangID uint) {
	Invalidate(ctx, BarangKey(barangID), BarangListKey, DashboardStatsKey)
}
