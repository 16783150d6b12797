package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix   = "profile:%d"
	DashboardKeyPrefix = "dashboard:%d"
)

const (
	// ProfileTTL bounds staleness of cached profiles; every stats delta also
	// invalidates the key explicitly.
	ProfileTTL   = 5 * time.Minute
	DashboardTTL = 30 * time.Second
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func DashboardKey(userID uint) string {
	return fmt.Sprintf(DashboardKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUserViews drops every cached view derived from the user's records.
// Called after any mutation that can change the profile or dashboard payload.
func InvalidateUserViews(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
	Invalidate(ctx, DashboardKey(userID))
}
