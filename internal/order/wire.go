package order

import (
	"database/sql"

	"go.uber.org/zap"

	"krua/internal/config"
	"krua/internal/ledger"
	"krua/internal/order/controller"
	"krua/internal/order/repository"
	"krua/internal/order/service"
	"krua/internal/order/usecase"
)

// Module bundles the wired order components the rest of the application
// needs: the HTTP controller and the summary use case the cron job shares.
type Module struct {
	Controller *controller.OrderController
	Summary    *usecase.WeeklySummaryUseCase
}

func NewModule(db *sql.DB, cfg *config.Config, notifier *ledger.Notifier, logger *zap.Logger) *Module {
	repo := repository.NewMySQLOrderRepository(db)

	allocator := service.NewCodeAllocator(repo, logger, cfg.Order.MaxAllocAttempts)
	summarySvc := service.NewSummaryService(repo, logger, cfg.Summary)

	createUC := usecase.NewCreateOrderUseCase(repo, allocator, notifier, logger, cfg.Order.MaxAllocAttempts)
	getUC := usecase.NewGetOrderUseCase(repo, logger)
	listUC := usecase.NewListOrdersUseCase(repo, logger)
	updateUC := usecase.NewUpdateStatusUseCase(repo, logger)
	summaryUC := usecase.NewWeeklySummaryUseCase(summarySvc, logger)

	return &Module{
		Controller: controller.NewOrderController(createUC, getUC, listUC, updateUC, summaryUC, logger),
		Summary:    summaryUC,
	}
}
