package service

import (
	"context"
	"time"

	"hud-compliance/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type SchedulerService struct {
	Cron        *cron.Cron
	Evaluator   *EvaluatorService
	Notifier    *NotifierService
	Certs       repository.CertificationRepository
	Inspections repository.InspectionRepository
	Settings    repository.SettingsRepository

	defaultSchedule string
}

func NewSchedulerService(
	evaluator *EvaluatorService,
	notifier *NotifierService,
	certs repository.CertificationRepository,
	inspections repository.InspectionRepository,
	settings repository.SettingsRepository,
	defaultSchedule string,
) *SchedulerService {
	// 使用標準 parser (支援 5 個欄位: 分 時 日 月 週)
	return &SchedulerService{
		Cron:            cron.New(),
		Evaluator:       evaluator,
		Notifier:        notifier,
		Certs:           certs,
		Inspections:     inspections,
		Settings:        settings,
		defaultSchedule: defaultSchedule,
	}
}

// Start 啟動排程：每天跑一次完整評估並發送告警
func (s *SchedulerService) Start() {
	schedule := s.defaultSchedule

	// 資料庫設定優先於設定檔
	if settings, err := s.Settings.GetSettings(context.Background()); err == nil {
		if settings.EvaluateEnabled && settings.EvaluateSchedule != "" {
			schedule = settings.EvaluateSchedule
		}
	}

	_, err := s.Cron.AddFunc(schedule, func() {
		logrus.Info("[Cron] 開始每日合規評估...")
		if err := s.RunEvaluation(context.Background()); err != nil {
			logrus.Errorf("[Cron] 合規評估失敗: %v", err)
		}
	})
	if err != nil {
		logrus.Errorf("排程註冊失敗: %v", err)
		return
	}

	s.Cron.Start()
	logrus.Infof("自動排程服務已啟動 (評估排程: %s)", schedule)
}

// Stop 停止排程
func (s *SchedulerService) Stop() {
	s.Cron.Stop()
}

// RunEvaluation 撈出全部資料跑一次評估，逐筆檢查是否要發告警
func (s *SchedulerService) RunEvaluation(ctx context.Context) error {
	certs, err := s.Certs.ListAll(ctx)
	if err != nil {
		return err
	}
	inspections, err := s.Inspections.ListAll(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	result := s.Evaluator.Evaluate(certs, inspections, now)

	logrus.Infof("[Cron] 評估完成: 認證 %d 筆, 即將到期 %d, 合規率 %.1f%%, 告警 %d 組, 資料警告 %d",
		result.Metrics.TotalCertifications, result.Metrics.ExpiringSoon,
		result.Metrics.ComplianceRate, len(result.Alerts), result.Warnings)

	for _, cert := range certs {
		urgency, daysLeft := s.Evaluator.ClassifyUrgency(cert, now)
		s.Notifier.CheckAndNotify(ctx, cert, urgency, daysLeft)
	}
	return nil
}
