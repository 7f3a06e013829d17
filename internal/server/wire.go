package server

import (
	"log/slog"

	"tableorder/internal/config"
	"tableorder/internal/handler"
	"tableorder/internal/infra/notify"
	infrarepo "tableorder/internal/infra/repository"
	repo "tableorder/internal/repository"
	"tableorder/internal/schedule"
	"tableorder/internal/usecase"
	"tableorder/internal/validator"

	"github.com/labstack/echo/v4"
)

// Deps は main（またはテスト）が用意する外部の部品
type Deps struct {
	Config  config.Config
	Logger  *slog.Logger
	Storage repo.Storage
	Menu    repo.MenuRepository
	// nil ならイベントを送らない
	Publisher usecase.OrderEventPublisher
	Scheduler schedule.Scheduler
	Clock     schedule.Clock
}

// Wire は Repository -> Usecase -> Handler の順に組み立てて echo を返す。
func Wire(d Deps) *echo.Echo {
	cfg := d.Config

	//Repository
	carts := infrarepo.NewCartStore(d.Storage)
	drafts := infrarepo.NewDraftStore(d.Storage)
	orders := infrarepo.NewOrderLog(d.Storage)
	inbox := notify.NewInbox(notify.DefaultCapacity, d.Clock, d.Logger)

	//Usecase
	menuUC := usecase.NewMenuUsecase(d.Menu, carts)
	cartUC := usecase.NewCartUsecase(d.Menu, carts, inbox)
	orderUC := usecase.NewOrderUsecase(d.Menu, carts, drafts, orders, validator.NewOrderValidator(), inbox, d.Clock)
	confirmUC := usecase.NewConfirmationUsecase(orders, d.Scheduler, d.Clock, cfg.ETAStartMinutes, cfg.ETAInterval)
	paymentUC := usecase.NewPaymentUsecase(usecase.PaymentDeps{
		DraftRepo: drafts,
		CartRepo:  carts,
		Orders:    orders,
		Notifier:  inbox,
		Publisher: d.Publisher,
		Handoff:   confirmUC,
		Scheduler: d.Scheduler,
		Clock:     d.Clock,
		Latency:   cfg.PaymentLatency,
		Logger:    d.Logger,
	})
	kitchenUC := usecase.NewKitchenUsecase(orders, d.Logger)

	//Handler
	h := Handlers{
		Landing:      handler.NewLandingHandler(cfg.ServiceName),
		Menu:         handler.NewMenuHandler(menuUC, cartUC),
		Cart:         handler.NewCartHandler(cartUC, orderUC),
		Payment:      handler.NewPaymentHandler(orderUC, paymentUC),
		Confirmation: handler.NewConfirmationHandler(confirmUC, d.Logger),
		Kitchen:      handler.NewKitchenHandler(kitchenUC),
		Notification: handler.NewNotificationHandler(inbox),
	}

	e := New(cfg, d.Logger, h)

	//放置されたセッションの片付け
	sweeper := usecase.NewSessionSweeper(d.Clock, cfg.SessionTTL, d.Logger, confirmUC, paymentUC, inbox)
	e.Server.RegisterOnShutdown(sweeper.Start(d.Scheduler))

	return e
}
