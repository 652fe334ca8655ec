package logic

import (
	"testing"
	"time"

	"github.com/supermodularxyz/simplegrants-sub000/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Grant{},
		&model.GrantTeam{},
		&model.Contribution{},
		&model.MatchingRound{},
		&model.MatchedFund{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func uintPtr(v uint) *uint {
	return &v
}

func createGrant(t *testing.T, db *gorm.DB, name, recipient string) *model.Grant {
	t.Helper()

	grant := &model.Grant{
		Name:             name,
		FundingGoal:      10000,
		Verified:         true,
		RecipientAddress: recipient,
	}
	if err := db.Create(grant).Error; err != nil {
		t.Fatalf("Failed to create grant: %v", err)
	}
	return grant
}

func createRound(t *testing.T, db *gorm.DB, name string, endTime time.Time, grants ...*model.Grant) *model.MatchingRound {
	t.Helper()

	round := &model.MatchingRound{
		Name:      name,
		Verified:  true,
		StartTime: endTime.Add(-30 * 24 * time.Hour),
		EndTime:   endTime,
	}
	if err := db.Create(round).Error; err != nil {
		t.Fatalf("Failed to create round: %v", err)
	}
	for _, grant := range grants {
		if err := db.Model(round).Association("Grants").Append(grant); err != nil {
			t.Fatalf("Failed to link grant %d to round: %v", grant.ID, err)
		}
	}
	return round
}

func createGrantContribution(t *testing.T, db *gorm.DB, grantID uint, contributor string, amountUsd float64) *model.Contribution {
	t.Helper()

	c := &model.Contribution{
		ContributorAddress: contributor,
		Amount:             amountUsd,
		Denomination:       "USD",
		AmountUsd:          amountUsd,
		Target:             model.TargetGrant,
		GrantID:            uintPtr(grantID),
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("Failed to create contribution: %v", err)
	}
	return c
}

func createPoolContribution(t *testing.T, db *gorm.DB, roundID uint, contributor string, amountUsd float64) *model.Contribution {
	t.Helper()

	c := &model.Contribution{
		ContributorAddress: contributor,
		Amount:             amountUsd,
		Denomination:       "USD",
		AmountUsd:          amountUsd,
		Target:             model.TargetRound,
		MatchingRoundID:    uintPtr(roundID),
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("Failed to create pool contribution: %v", err)
	}
	return c
}
