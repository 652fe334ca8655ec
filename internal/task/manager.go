package task

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/supermodularxyz/simplegrants-sub000/internal/config"
	"github.com/supermodularxyz/simplegrants-sub000/internal/logger"
	"github.com/supermodularxyz/simplegrants-sub000/internal/payment"
	"gorm.io/gorm"
)

// Manager 任务管理器
type Manager struct {
	scheduler   gocron.Scheduler
	db          *gorm.DB
	transferrer payment.Transferrer
	config      *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(db *gorm.DB, transferrer payment.Transferrer, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler:   s,
		db:          db,
		transferrer: transferrer,
		config:      cfg,
	}
}

// Start 启动任务管理器
func Start(db *gorm.DB, transferrer payment.Transferrer, cfg *config.Config) *Manager {
	manager := NewManager(db, transferrer, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册配捐派发任务
	m.RegisterRoundPayoutJob()
}

// RegisterRoundPayoutJob 注册配捐派发任务。
// 单例模式：上一次执行未结束时不会重入。
func (m *Manager) RegisterRoundPayoutJob() {
	job := NewRoundPayoutJob(m.db, m.config, m.transferrer)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
