package model

// カートの明細
// 商品IDと数量だけを持つ。価格はカタログから都度引く（ライブ価格）。
type CartLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}
