package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	DesignKeyPrefix = "design:%s"
	FeedKey         = "designs:feed"
)

const (
	UserTTL   = 5 * time.Minute
	DesignTTL = 30 * time.Minute
	FeedTTL   = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func DesignKey(designID string) string {
	return fmt.Sprintf(DesignKeyPrefix, designID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateDesign(ctx context.Context, designID string) {
	Invalidate(ctx, DesignKey(designID))
	Invalidate(ctx, FeedKey)
}

func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedKey)
}
