package task

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/supermodularxyz/simplegrants-sub000/internal/config"
	"github.com/supermodularxyz/simplegrants-sub000/internal/logger"
	"github.com/supermodularxyz/simplegrants-sub000/internal/logic"
	"github.com/supermodularxyz/simplegrants-sub000/internal/model"
	"github.com/supermodularxyz/simplegrants-sub000/internal/payment"
	"github.com/supermodularxyz/simplegrants-sub000/internal/qf"
	"gorm.io/gorm"
)

// RoundPayoutJob 配捐派发任务。
// 定期扫描已结束且未派发的轮次，计算QF分配并向各项目转账。
type RoundPayoutJob struct {
	db          *gorm.DB
	config      *config.Config
	transferrer payment.Transferrer
	roundLogic  *logic.MatchingRoundLogic
	fundLogic   *logic.MatchedFundLogic
}

// transferResult 单笔转账的结果（成功或失败都会被收集）
type transferResult struct {
	grantID     uint
	match       qf.GrantMatch
	transferRef string
	txHash      string
	err         error
}

// NewRoundPayoutJob 创建配捐派发任务
func NewRoundPayoutJob(db *gorm.DB, cfg *config.Config, transferrer payment.Transferrer) *RoundPayoutJob {
	return &RoundPayoutJob{
		db:          db,
		config:      cfg,
		transferrer: transferrer,
		roundLogic:  logic.NewMatchingRoundLogic(db),
		fundLogic:   logic.NewMatchedFundLogic(db),
	}
}

// GetName 获取任务名称
func (j *RoundPayoutJob) GetName() string {
	return "matching_round_payout"
}

// GetSchedule 获取调度配置
func (j *RoundPayoutJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务。轮次之间串行处理，避免挤占支付通道。
func (j *RoundPayoutJob) Execute() {
	logger.Info("Starting matching round payout task")

	rounds, err := j.roundLogic.GetEndedUnpaidRounds(time.Now())
	if err != nil {
		logger.Error("Failed to fetch ended unpaid rounds: %v", err)
		return
	}

	if len(rounds) == 0 {
		logger.Info("Matching round payout task completed. No rounds to pay out")
		return
	}

	paidCount := 0
	for _, round := range rounds {
		if err := j.ProcessRound(round.ID); err != nil {
			logger.Error("Failed to pay out round %d: %v", round.ID, err)
			continue
		}
		paidCount++
	}

	logger.Info("Matching round payout task completed. Paid out %d of %d rounds", paidCount, len(rounds))
}

// ProcessRound 派发单个轮次。
// 默认策略（mark_paid_first=true）是先把 paid 翻转为 true 再发起转账：
// 进程在转账中途崩溃时该轮次不会被重新结算、不会重复支付，
// 代价是失败的转账只留下日志，需要人工对账补发。
// 翻转通过条件更新完成，并发调用最多一个能成功，未抢到的直接退出。
func (j *RoundPayoutJob) ProcessRound(roundID uint) error {
	round, err := j.roundLogic.GetRoundWithContributions(roundID)
	if err != nil {
		return err
	}
	if round.Paid {
		return nil
	}

	agg := qf.Aggregate(round)
	matches := qf.CalculateMatches(agg)

	if j.config.Task.MarkPaidFirst {
		flipped, err := j.roundLogic.MarkRoundPaid(round.ID)
		if err != nil {
			return err
		}
		if !flipped {
			logger.Warn("Round %d already marked paid, skipping", round.ID)
			return nil
		}
	}

	results := j.dispatchTransfers(round.ID, matches)

	// 只为成功的转账写入凭证
	now := time.Now()
	var records []model.MatchedFund
	failedCount := 0
	for _, r := range results {
		if r.err != nil {
			failedCount++
			logger.Error("Transfer for grant %d in round %d failed (ref %s): %v",
				r.grantID, round.ID, r.transferRef, r.err)
			continue
		}
		records = append(records, model.MatchedFund{
			MatchingRoundID: round.ID,
			GrantID:         r.grantID,
			Amount:          r.match.QfAmount,
			Denomination:    "USD",
			AmountUsd:       r.match.QfAmount,
			TxHash:          r.txHash,
			TransferRef:     r.transferRef,
			PayoutAt:        now,
		})
	}

	if err := j.fundLogic.InsertMatchedFunds(records); err != nil {
		// 资金已经转出但凭证落库失败，只能靠幂等键和日志对账
		logger.Error("Failed to persist %d matched funds for round %d: %v",
			len(records), round.ID, err)
	}

	if !j.config.Task.MarkPaidFirst {
		if _, err := j.roundLogic.MarkRoundPaid(round.ID); err != nil {
			return err
		}
	}

	if len(results) > 0 && len(records) == 0 {
		logger.Error("Round %d payout failed entirely: 0 of %d transfers succeeded",
			round.ID, len(results))
	} else {
		logger.Info("Round %d payout completed: %d succeeded, %d failed",
			round.ID, len(records), failedCount)
	}

	return nil
}

// dispatchTransfers 并发发起本轮次的全部转账并等待所有结果。
// 不会因为某一笔失败而中断其他转账，每笔的结果都会被收集。
func (j *RoundPayoutJob) dispatchTransfers(roundID uint, matches map[uint]qf.GrantMatch) []transferResult {
	poolSize := j.config.Task.PoolSize
	if poolSize <= 0 {
		poolSize = 8
	}
	timeout := time.Duration(j.config.Task.TransferTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		logger.Error("Failed to create transfer pool for round %d: %v", roundID, err)
		return nil
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []transferResult
	)

	for grantID, match := range matches {
		if match.QfAmount <= 0 {
			continue
		}

		grantID, match := grantID, match
		wg.Add(1)
		submit := func() {
			defer wg.Done()

			result := transferResult{
				grantID:     grantID,
				match:       match,
				transferRef: uuid.NewString(),
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			result.txHash, result.err = j.transferrer.Transfer(ctx, match.RecipientAddress, match.QfAmount)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}

		if err := pool.Submit(submit); err != nil {
			wg.Done()
			mu.Lock()
			results = append(results, transferResult{grantID: grantID, match: match, err: err})
			mu.Unlock()
		}
	}

	wg.Wait()
	return results
}
