package logic

import (
	"math"
	"testing"
	"time"
)

func TestEstimateMatchedAmount_InvalidInput(t *testing.T) {
	db := setupTestDB(t)
	estimateLogic := NewEstimateLogic(db)

	grant := createGrant(t, db, "Grant A", "0xa")
	createRound(t, db, "Active", time.Now().Add(time.Hour), grant)

	if got := estimateLogic.EstimateMatchedAmount(0, grant.ID); got != 0 {
		t.Errorf("Expected 0 for zero donation, got %f", got)
	}
	if got := estimateLogic.EstimateMatchedAmount(-5, grant.ID); got != 0 {
		t.Errorf("Expected 0 for negative donation, got %f", got)
	}
	if got := estimateLogic.EstimateMatchedAmount(100, 9999); got != 0 {
		t.Errorf("Expected 0 for unknown grant, got %f", got)
	}
}

func TestEstimateMatchedAmount_NoActiveRound(t *testing.T) {
	db := setupTestDB(t)
	estimateLogic := NewEstimateLogic(db)
	roundLogic := NewMatchingRoundLogic(db)

	// 轮次已结束
	endedGrant := createGrant(t, db, "Ended grant", "0xa")
	createRound(t, db, "Ended", time.Now().Add(-time.Hour), endedGrant)
	if got := estimateLogic.EstimateMatchedAmount(100, endedGrant.ID); got != 0 {
		t.Errorf("Expected 0 for grant in ended round, got %f", got)
	}

	// 轮次还在进行但已被派发
	paidGrant := createGrant(t, db, "Paid grant", "0xb")
	paidRound := createRound(t, db, "Paid", time.Now().Add(time.Hour), paidGrant)
	if _, err := roundLogic.MarkRoundPaid(paidRound.ID); err != nil {
		t.Fatalf("MarkRoundPaid failed: %v", err)
	}
	if got := estimateLogic.EstimateMatchedAmount(100, paidGrant.ID); got != 0 {
		t.Errorf("Expected 0 for grant in paid round, got %f", got)
	}

	// 不在任何轮次里的项目
	lonely := createGrant(t, db, "Lonely grant", "0xc")
	if got := estimateLogic.EstimateMatchedAmount(100, lonely.ID); got != 0 {
		t.Errorf("Expected 0 for grant outside any round, got %f", got)
	}
}

func TestEstimateMatchedAmount_Scenario(t *testing.T) {
	db := setupTestDB(t)
	estimateLogic := NewEstimateLogic(db)

	// $600 场景：A 权重900已分$540，B 权重100已分$60
	grantA := createGrant(t, db, "Grant A", "0xa")
	grantB := createGrant(t, db, "Grant B", "0xb")
	round := createRound(t, db, "Round 1", time.Now().Add(time.Hour), grantA, grantB)

	createPoolContribution(t, db, round.ID, "0xf1", 200)
	createPoolContribution(t, db, round.ID, "0xf2", 200)
	createPoolContribution(t, db, round.ID, "0xf3", 200)

	createGrantContribution(t, db, grantA.ID, "0x1", 100)
	createGrantContribution(t, db, grantA.ID, "0x2", 400)
	createGrantContribution(t, db, grantB.ID, "0x3", 100)

	// B 再收一笔$100：新权重400，新除数1300，新配捐 600*400/1300
	got := estimateLogic.EstimateMatchedAmount(100, grantB.ID)
	expected := 600*400.0/1300.0 - 60

	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("Expected marginal match %f, got %f", expected, got)
	}
}

func TestEstimateMatchedAmount_FirstDonationTakesPool(t *testing.T) {
	db := setupTestDB(t)
	estimateLogic := NewEstimateLogic(db)

	grant := createGrant(t, db, "Grant A", "0xa")
	round := createRound(t, db, "Round 1", time.Now().Add(time.Hour), grant)
	createPoolContribution(t, db, round.ID, "0xf1", 600)

	got := estimateLogic.EstimateMatchedAmount(50, grant.ID)
	if math.Abs(got-600) > 1e-9 {
		t.Errorf("Expected first donation to attract the whole pool, got %f", got)
	}
}
