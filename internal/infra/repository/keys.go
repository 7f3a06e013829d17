package repository

import "tableorder/internal/infra/storage"

// ストアのキー名（元の画面が使っていたものと同じ）
const (
	keyCart         = "cart"
	keyTableID      = "tableId"
	keyCurrentOrder = "currentOrder"
	keyOrders       = "orders"
)

// sessionKey は session:<id>:<name>
func sessionKey(sessionID, name string) string {
	return storage.SessionPrefix + sessionID + ":" + name
}
