package model

// 支払いシミュレーションの状態（idle -> processing -> settled）
type PaymentState string

const (
	PaymentStateIdle       PaymentState = "idle"
	PaymentStateProcessing PaymentState = "processing"
	PaymentStateSettled    PaymentState = "settled"
)
