package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/internal/config"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/auditing"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/sirupsen/logrus"
)

// Máximo de variantes listadas num único alerta
const lowStockAlertLimit = 50

// systemActor assina as atividades geradas pelos jobs
var systemActor = domain.Actor{EmployeeName: "Sistema", Context: domain.ContextBoutique}

// LowStockAlertConfig representa a configuração do alerta de estoque baixo
type LowStockAlertConfig struct {
	CronSchedule string
	Threshold    int
	SyncEnabled  bool
}

// LowStockAlertService verifica periodicamente as variantes com estoque abaixo
// do limite e registra um alerta no histórico de atividades
type LowStockAlertService struct {
	scheduler           *gocron.Scheduler
	config              LowStockAlertConfig
	inventory           repository.InventoryRepository
	auditor             auditing.Auditor
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastAlertCount      int
}

func NewLowStockAlertService(
	inventory repository.InventoryRepository,
	auditor auditing.Auditor,
	appConfig *config.Config,
) *LowStockAlertService {
	alertConfig := LowStockAlertConfig{
		CronSchedule: appConfig.LowStockAlert.CronSchedule,
		Threshold:    appConfig.Sales.LowStockThreshold,
		SyncEnabled:  appConfig.LowStockAlert.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": alertConfig.CronSchedule,
		"threshold":     alertConfig.Threshold,
		"sync_enabled":  alertConfig.SyncEnabled,
	}).Info("Configuração do alerta de estoque baixo carregada")

	return &LowStockAlertService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    alertConfig,
		inventory: inventory,
		auditor:   auditor,
	}
}

// Start agenda o job; o agendador para quando ctx é cancelado
func (s *LowStockAlertService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Alerta de estoque baixo desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do alerta de estoque baixo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar alerta de estoque baixo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do alerta de estoque baixo")
		s.scheduler.Stop()
	}()

	return nil
}

// run executa uma verificação, ignorando se outra já estiver em andamento
func (s *LowStockAlertService) run(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Verificação de estoque baixo já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	count, err := s.checkLowStock(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	if err == nil {
		s.lastSyncCompletedAt = time.Now()
		s.lastAlertCount = count
	}
	s.syncMutex.Unlock()

	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro na verificação de estoque baixo")
	}
}

// checkLowStock grava um alerta com as variantes abaixo do limite e retorna
// quantas foram listadas. Sem variantes abaixo do limite nada é gravado.
func (s *LowStockAlertService) checkLowStock(ctx context.Context) (int, error) {
	variants, err := s.inventory.LowStock(ctx, s.config.Threshold, lowStockAlertLimit)
	if err != nil {
		return 0, fmt.Errorf("erro ao buscar variantes com estoque baixo: %w", err)
	}

	if len(variants) == 0 {
		log.ForContext(ctx).Info("Nenhuma variante com estoque baixo")
		return 0, nil
	}

	labels := make([]string, 0, len(variants))
	for _, v := range variants {
		labels = append(labels, fmt.Sprintf("%s %s/%s (%d)", v.ProductCode, v.ColorName, v.SizeLabel, v.Quantity))
	}

	activity := domain.NewActivity(
		domain.ActivityLowStockAlert,
		systemActor,
		domain.ContextBoutique,
		fmt.Sprintf("Estoque baixo em %d variante(s): %s", len(variants), strings.Join(labels, ", ")),
		map[string]any{
			"threshold": s.config.Threshold,
			"variants":  variants,
		},
	)
	if err := s.auditor.Record(ctx, activity); err != nil {
		return 0, fmt.Errorf("erro ao registrar alerta de estoque baixo: %w", err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"threshold": s.config.Threshold,
		"variants":  len(variants),
	}).Warn("Alerta de estoque baixo registrado")

	return len(variants), nil
}

// TriggerManualSync dispara uma verificação fora do agendamento
func (s *LowStockAlertService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Verificação de estoque baixo já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando verificação manual de estoque baixo")
	go s.run(context.Background())
}

// GetStatus retorna o status atual do job
func (s *LowStockAlertService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"threshold":              s.config.Threshold,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_alert_count":       s.lastAlertCount,
	}
}
