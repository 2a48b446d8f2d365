// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-json-experiment/json"
	"gorm.io/gorm"

	"github.com/colours93/a2a"
)

// GORMStore is an optional [Store] backed by any GORM-supported SQL
// database. Task, history, and artifacts are stored as a single JSON
// column: this module's data model has no relational structure worth
// normalizing, and every reader is this package itself.
type GORMStore struct {
	db        *gorm.DB
	tableName string
}

var _ Store = (*GORMStore)(nil)

// taskRow is the GORM model backing GORMStore.
type taskRow struct {
	ID        string `gorm:"primaryKey"`
	ContextID string `gorm:"index"`
	State     string `gorm:"index"`
	Payload   []byte
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (taskRow) TableName() string { return "a2a_tasks" }

// GORMStoreConfig configures a GORMStore.
type GORMStoreConfig struct {
	DB          *gorm.DB
	CreateTable bool // run AutoMigrate on construction
}

// NewGORMStore constructs a GORMStore over an existing *gorm.DB.
func NewGORMStore(cfg GORMStoreConfig) (*GORMStore, error) {
	if cfg.DB == nil {
		return nil, fmt.Errorf("taskstore: gorm db must not be nil")
	}
	s := &GORMStore{db: cfg.DB, tableName: taskRow{}.TableName()}
	if cfg.CreateTable {
		if err := cfg.DB.AutoMigrate(&taskRow{}); err != nil {
			return nil, fmt.Errorf("taskstore: automigrate: %w", err)
		}
	}
	return s, nil
}

// Save implements [Store].
func (s *GORMStore) Save(ctx context.Context, task *a2a.Task) error {
	if task == nil {
		return fmt.Errorf("taskstore: task must not be nil")
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("taskstore: invalid task: %w", err)
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("taskstore: marshal task: %w", err)
	}

	row := taskRow{
		ID:        task.ID,
		ContextID: task.ContextID,
		State:     string(task.Status.State),
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("taskstore: save task %s: %w", task.ID, err)
	}
	return nil
}

// Get implements [Store].
func (s *GORMStore) Get(ctx context.Context, taskID string) (*a2a.Task, error) {
	var row taskRow
	err := s.db.WithContext(ctx).Where("id = ?", taskID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, a2a.NewTaskNotFoundError(taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("taskstore: get task %s: %w", taskID, err)
	}
	var t a2a.Task
	if err := json.Unmarshal(row.Payload, &t); err != nil {
		return nil, fmt.Errorf("taskstore: decode task %s: %w", taskID, err)
	}
	return &t, nil
}

// Delete implements [Store].
func (s *GORMStore) Delete(ctx context.Context, taskID string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", taskID).Delete(&taskRow{}).Error; err != nil {
		return fmt.Errorf("taskstore: delete task %s: %w", taskID, err)
	}
	return nil
}

// List implements [Store].
func (s *GORMStore) List(ctx context.Context, params a2a.TaskListParams) (a2a.TaskListResult, error) {
	params.Normalize()

	q := s.db.WithContext(ctx).Model(&taskRow{}).Order("created_at desc")
	if params.ContextID != "" {
		q = q.Where("context_id = ?", params.ContextID)
	}
	if params.State != "" {
		q = q.Where("state = ?", string(params.State))
	}

	offset := 0
	if params.PageToken != "" {
		if _, err := fmt.Sscanf(params.PageToken, "%d", &offset); err != nil {
			return a2a.TaskListResult{}, fmt.Errorf("%w: invalid page token", a2a.ErrInvalidParams)
		}
	}

	var rows []taskRow
	if err := q.Offset(offset).Limit(params.PageSize + 1).Find(&rows).Error; err != nil {
		return a2a.TaskListResult{}, fmt.Errorf("taskstore: list tasks: %w", err)
	}

	result := a2a.TaskListResult{}
	n := len(rows)
	if n > params.PageSize {
		n = params.PageSize
		result.NextPageToken = fmt.Sprintf("%d", offset+params.PageSize)
	}
	for _, row := range rows[:n] {
		var t a2a.Task
		if err := json.Unmarshal(row.Payload, &t); err != nil {
			return a2a.TaskListResult{}, fmt.Errorf("taskstore: decode task %s: %w", row.ID, err)
		}
		result.Tasks = append(result.Tasks, t)
	}
	return result, nil
}

// Count implements [Store].
func (s *GORMStore) Count(ctx context.Context, contextID string) (int64, error) {
	q := s.db.WithContext(ctx).Model(&taskRow{})
	if contextID != "" {
		q = q.Where("context_id = ?", contextID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("taskstore: count tasks: %w", err)
	}
	return n, nil
}
