package logic

import (
	"testing"
	"time"

	"github.com/supermodularxyz/simplegrants-sub000/internal/model"
)

func TestCreateContribution_GrantTarget(t *testing.T) {
	db := setupTestDB(t)
	contributionLogic := NewContributionLogic(db)

	grant := createGrant(t, db, "Grant A", "0xa")

	c := &model.Contribution{
		ContributorAddress: "0x1",
		Amount:             100,
		Denomination:       "USD",
		AmountUsd:          100,
		Target:             model.TargetGrant,
		GrantID:            uintPtr(grant.ID),
	}
	if err := contributionLogic.CreateContribution(c); err != nil {
		t.Fatalf("CreateContribution failed: %v", err)
	}
	if c.ID == 0 {
		t.Error("Expected contribution to be persisted")
	}
}

func TestCreateContribution_UnverifiedGrantRejected(t *testing.T) {
	db := setupTestDB(t)
	contributionLogic := NewContributionLogic(db)

	grant := &model.Grant{Name: "Unverified", FundingGoal: 100, RecipientAddress: "0xa"}
	if err := db.Create(grant).Error; err != nil {
		t.Fatalf("Failed to create grant: %v", err)
	}

	c := &model.Contribution{
		ContributorAddress: "0x1",
		Amount:             100,
		Denomination:       "USD",
		AmountUsd:          100,
		Target:             model.TargetGrant,
		GrantID:            uintPtr(grant.ID),
	}
	if err := contributionLogic.CreateContribution(c); err == nil {
		t.Error("Expected contribution to unverified grant to be rejected")
	}
}

func TestCreateContribution_RoundTarget(t *testing.T) {
	db := setupTestDB(t)
	contributionLogic := NewContributionLogic(db)

	active := createRound(t, db, "Active", time.Now().Add(time.Hour))
	ended := createRound(t, db, "Ended", time.Now().Add(-time.Hour))

	c := &model.Contribution{
		ContributorAddress: "0xf1",
		Amount:             200,
		Denomination:       "USD",
		AmountUsd:          200,
		Target:             model.TargetRound,
		MatchingRoundID:    uintPtr(active.ID),
	}
	if err := contributionLogic.CreateContribution(c); err != nil {
		t.Fatalf("CreateContribution failed: %v", err)
	}

	// 已结束的轮次不再接受注资
	late := &model.Contribution{
		ContributorAddress: "0xf1",
		Amount:             200,
		Denomination:       "USD",
		AmountUsd:          200,
		Target:             model.TargetRound,
		MatchingRoundID:    uintPtr(ended.ID),
	}
	if err := contributionLogic.CreateContribution(late); err == nil {
		t.Error("Expected contribution to ended round to be rejected")
	}
}

func TestCreateContribution_TargetValidation(t *testing.T) {
	db := setupTestDB(t)
	contributionLogic := NewContributionLogic(db)

	grant := createGrant(t, db, "Grant A", "0xa")
	round := createRound(t, db, "Active", time.Now().Add(time.Hour))

	// 两个目标都设置
	both := &model.Contribution{
		ContributorAddress: "0x1",
		Amount:             100,
		Denomination:       "USD",
		AmountUsd:          100,
		Target:             model.TargetGrant,
		GrantID:            uintPtr(grant.ID),
		MatchingRoundID:    uintPtr(round.ID),
	}
	if err := contributionLogic.CreateContribution(both); err == nil {
		t.Error("Expected contribution with both targets to be rejected")
	}

	// 金额非正
	zero := &model.Contribution{
		ContributorAddress: "0x1",
		Denomination:       "USD",
		Target:             model.TargetGrant,
		GrantID:            uintPtr(grant.ID),
	}
	if err := contributionLogic.CreateContribution(zero); err == nil {
		t.Error("Expected zero-amount contribution to be rejected")
	}
}

func TestFlagContribution(t *testing.T) {
	db := setupTestDB(t)
	contributionLogic := NewContributionLogic(db)

	grant := createGrant(t, db, "Grant A", "0xa")
	c := createGrantContribution(t, db, grant.ID, "0x1", 100)

	if err := contributionLogic.FlagContribution(c.ID, true); err != nil {
		t.Fatalf("FlagContribution failed: %v", err)
	}

	var reloaded model.Contribution
	if err := db.First(&reloaded, c.ID).Error; err != nil {
		t.Fatalf("Failed to reload contribution: %v", err)
	}
	if !reloaded.Flagged {
		t.Error("Expected contribution to be flagged")
	}

	if err := contributionLogic.FlagContribution(9999, true); err == nil {
		t.Error("Expected error for missing contribution")
	}
}
