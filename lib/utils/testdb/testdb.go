// Package testdb opens throwaway sqlite databases with the full schema for package tests.
package testdb

import (
	"fmt"
	"home-task-tracker/db"
	"home-task-tracker/lib/utils/helpers"
	"home-task-tracker/models"
	dbmodels "home-task-tracker/models/db"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var seq atomic.Int64

// New returns a migrated in-memory database private to t.
func New(t *testing.T) *gorm.DB {
	t.Helper()
	name := fmt.Sprintf("%s_%d", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()), seq.Add(1))
	conn, err := db.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)))
	require.Nil(t, err)
	sqlDB, err := conn.DB()
	require.Nil(t, err)
	// a single connection keeps the memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	require.Nil(t, db.Migrate(conn))
	return conn
}

// FixedClock always reports now.
func FixedClock(now time.Time) helpers.Clock {
	return func() time.Time {
		return now
	}
}

func CreateAdmin(t *testing.T, conn *gorm.DB, email string) dbmodels.User {
	t.Helper()
	rec := dbmodels.User{
		Email:     email,
		Password:  "-",
		Role:      models.UserRoleAdmin,
		FirstName: "Admin",
		LastName:  strings.Split(email, "@")[0],
		IsActive:  true,
	}
	require.Nil(t, conn.Create(&rec).Error)
	return rec
}

func CreateWorker(t *testing.T, conn *gorm.DB, adminID uint, email string) dbmodels.User {
	t.Helper()
	rec := dbmodels.User{
		Email:     email,
		Password:  "-",
		Role:      models.UserRoleWorker,
		AdminID:   &adminID,
		FirstName: "Worker",
		LastName:  strings.Split(email, "@")[0],
		IsActive:  true,
	}
	require.Nil(t, conn.Create(&rec).Error)
	return rec
}

func CreateTask(t *testing.T, conn *gorm.DB, adminID uint, title, value string, priority models.TaskPriority) dbmodels.Task {
	t.Helper()
	rec := dbmodels.Task{
		Title:         title,
		MonetaryValue: decimal.RequireFromString(value),
		Priority:      priority,
		IsActive:      true,
		CreatedBy:     adminID,
	}
	require.Nil(t, conn.Create(&rec).Error)
	return rec
}

// CreateCompletion inserts a completion in the given status without going through the state machine.
func CreateCompletion(t *testing.T, conn *gorm.DB, taskID, workerID uint, day time.Time, status models.CompletionStatus) dbmodels.TaskCompletion {
	t.Helper()
	rec := dbmodels.TaskCompletion{
		TaskID:         taskID,
		WorkerID:       workerID,
		CompletionDate: helpers.ToDate(day),
		Status:         status,
		SubmittedAt:    day,
	}
	if status != models.CompletionStatusPending {
		reviewedAt := day.Add(time.Hour)
		rec.ReviewedAt = &reviewedAt
	}
	require.Nil(t, conn.Create(&rec).Error)
	return rec
}

func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
