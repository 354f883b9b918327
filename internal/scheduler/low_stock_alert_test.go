package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/laroza/pos-api/infrastructure/repository/mocks"
	"github.com/laroza/pos-api/internal/domain"
	auditmocks "github.com/laroza/pos-api/internal/usecases/auditing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLowStockAlertService_checkLowStock(t *testing.T) {
	variants := []domain.LowStockVariant{
		{ProductID: 1, ProductCode: "LR-1", ColorName: "Red", SizeLabel: "M", Quantity: 2},
		{ProductID: 2, ProductCode: "LR-2", ColorName: "Black", SizeLabel: "S", Quantity: 0},
	}

	tests := []struct {
		name      string
		setup     func(inv *mocks.MockInventoryRepository, auditor *auditmocks.MockAuditor)
		wantCount int
		wantErr   bool
	}{
		{
			name: "Variantes abaixo do limite geram um alerta",
			setup: func(inv *mocks.MockInventoryRepository, auditor *auditmocks.MockAuditor) {
				inv.EXPECT().LowStock(gomock.Any(), 5, lowStockAlertLimit).Return(variants, nil)
				auditor.EXPECT().Record(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *domain.Activity) error {
						assert.Equal(t, domain.ActivityLowStockAlert, a.Type)
						assert.Equal(t, domain.ContextBoutique, a.Context)
						assert.Equal(t, "Sistema", a.EmployeeName)
						assert.Contains(t, a.Description, "LR-1 Red/M (2)")
						assert.Contains(t, a.Description, "LR-2 Black/S (0)")
						assert.Equal(t, 5, a.Metadata["threshold"])
						return nil
					})
			},
			wantCount: 2,
		},
		{
			name: "Sem variantes abaixo do limite nada é gravado",
			setup: func(inv *mocks.MockInventoryRepository, auditor *auditmocks.MockAuditor) {
				inv.EXPECT().LowStock(gomock.Any(), 5, lowStockAlertLimit).Return([]domain.LowStockVariant{}, nil)
			},
			wantCount: 0,
		},
		{
			name: "Erro na consulta de estoque",
			setup: func(inv *mocks.MockInventoryRepository, auditor *auditmocks.MockAuditor) {
				inv.EXPECT().LowStock(gomock.Any(), 5, lowStockAlertLimit).Return(nil, errors.New("conexão perdida"))
			},
			wantErr: true,
		},
		{
			name: "Erro ao gravar o alerta",
			setup: func(inv *mocks.MockInventoryRepository, auditor *auditmocks.MockAuditor) {
				inv.EXPECT().LowStock(gomock.Any(), 5, lowStockAlertLimit).Return(variants, nil)
				auditor.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("falha"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			inventory := mocks.NewMockInventoryRepository(ctrl)
			auditor := auditmocks.NewMockAuditor(ctrl)
			tt.setup(inventory, auditor)

			service := &LowStockAlertService{
				config:    LowStockAlertConfig{Threshold: 5},
				inventory: inventory,
				auditor:   auditor,
			}

			count, err := service.checkLowStock(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestLowStockAlertService_runUpdatesStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	inventory := mocks.NewMockInventoryRepository(ctrl)
	auditor := auditmocks.NewMockAuditor(ctrl)

	inventory.EXPECT().LowStock(gomock.Any(), 3, lowStockAlertLimit).
		Return([]domain.LowStockVariant{{ProductCode: "LR-1", ColorName: "Red", SizeLabel: "M", Quantity: 1}}, nil)
	auditor.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	service := &LowStockAlertService{
		config:    LowStockAlertConfig{CronSchedule: "0 8 * * *", Threshold: 3},
		inventory: inventory,
		auditor:   auditor,
	}

	service.run(context.Background())

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, 1, status["last_alert_count"])
	assert.Equal(t, "0 8 * * *", status["sync_cron"])
	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestLowStockAlertService_StartDisabled(t *testing.T) {
	service := &LowStockAlertService{config: LowStockAlertConfig{SyncEnabled: false}}
	assert.NoError(t, service.Start(context.Background()))
}
