package model

// 注文ステータスの表示用情報
type StatusView struct {
	Icon       string `json:"icon"`
	Label      string `json:"label"`
	ColorClass string `json:"color_class"`
}

// ProjectStatus は未知のステータスを "Processing" として扱う。
func ProjectStatus(status OrderStatus) StatusView {
	switch status {
	case OrderStatusPaid:
		return StatusView{Icon: "check-circle", Label: "Order Confirmed", ColorClass: "bg-green-100 text-green-800"}
	case OrderStatusPreparing:
		return StatusView{Icon: "chef-hat", Label: "Being Prepared", ColorClass: "bg-orange-100 text-orange-800"}
	case OrderStatusReady:
		return StatusView{Icon: "check-circle", Label: "Ready for Pickup", ColorClass: "bg-blue-100 text-blue-800"}
	default:
		return StatusView{Icon: "clock", Label: "Processing", ColorClass: "bg-gray-100 text-gray-800"}
	}
}

// CanAdvance はキッチン側の遷移（paid -> preparing -> ready）だけ許可する。
func CanAdvance(from, to OrderStatus) bool {
	switch {
	case from == OrderStatusPaid && to == OrderStatusPreparing:
		return true
	case from == OrderStatusPreparing && to == OrderStatusReady:
		return true
	default:
		return false
	}
}
