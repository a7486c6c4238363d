// Package repo implements the per-entity repositories over the document
// store: partners in the shared "users" collection, orders and
// fulfillments per sales channel, the rewards catalog with its redemption
// history, and the daily price feed.
//
// Repositories follow the "thin repository" approach: one store operation
// per call, no business rules, no retries. Attachment-bearing writes
// resolve inline payloads through the uploads package before the document
// write is issued, so a persisted document never references an upload that
// has not completed, and never contains an inline payload field.
//
// Error semantics:
//   - A missing document surfaces as store.ErrNotFound.
//   - Store failures are logged once here (their origin) and propagated
//     unwrapped for the service layer to classify.
//   - Upload failures do not propagate at all; they degrade to an absent
//     reference inside the uploads package.
package repo

import (
	"time"

	"github.com/dealerhub/dealerhub-backend/internal/domain"
)

// Collection names, mirroring the persisted layout.
const (
	colUsers          = "users"
	colRewards        = "rewards"
	colRewardsHistory = "rewards_history"
	colDailyPrice     = "daily_price"
	colAdmins         = "admins"
)

// ordersCollection maps a sales channel to its order book collection.
func ordersCollection(ch domain.Channel) string {
	return string(ch) + "_orders"
}

// fulfillmentsCollection maps a sales channel to its fulfillment log.
func fulfillmentsCollection(ch domain.Channel) string {
	return string(ch) + "_fulfillments"
}

// The helpers below read loosely-typed document fields. Firestore returns
// integers as int64 and the memory store keeps whatever Go type was
// written, so numeric reads accept both.

func docString(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func docInt(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func docFloat(data map[string]any, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func docBool(data map[string]any, key string) bool {
	b, _ := data[key].(bool)
	return b
}

func docTime(data map[string]any, key string) time.Time {
	t, _ := data[key].(time.Time)
	return t
}

// ref wraps a resolved attachment URL for persistence: an absent reference
// is stored as an explicit null, never as an empty string.
func ref(url string) any {
	if url == "" {
		return nil
	}
	return url
}
