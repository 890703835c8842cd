package main

import (
	"context"
	"fmt"
	"time"
)

// ConversationStore records delivered answers for later retrieval. Entries
// are expected to expire after the configured retention window.
type ConversationStore interface {
	Append(ctx context.Context, answer Answer) error
}

// RedisConversationStore keeps recent conversation turns in the cache, keyed
// by user and timestamp, with the retention window as TTL. Redis evicts
// expired turns on its own; the scheduler prunes the long-term archive in
// Postgres separately.
type RedisConversationStore struct {
	cache     Cache
	retention time.Duration
}

func NewRedisConversationStore(cache Cache, retention time.Duration) *RedisConversationStore {
	return &RedisConversationStore{cache: cache, retention: retention}
}

type conversationRecord struct {
	Query      string    `json:"query"`
	Response   string    `json:"response"`
	UserID     string    `json:"user_id,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	AIEnhanced bool      `json:"ai_enhanced"`
}

func (s *RedisConversationStore) Append(ctx context.Context, answer Answer) error {
	user := answer.UserID
	if user == "" {
		user = "anonymous"
	}
	key := fmt.Sprintf("conversation:%s:%s", user, answer.Timestamp.UTC().Format(time.RFC3339Nano))
	record := conversationRecord{
		Query:      answer.Query,
		Response:   answer.ResponseText,
		UserID:     answer.UserID,
		SessionID:  answer.SessionID,
		Timestamp:  answer.Timestamp,
		AIEnhanced: answer.AIEnhanced,
	}
	if err := s.cache.Set(ctx, key, record, s.retention); err != nil {
		return fmt.Errorf("couldn't store conversation turn: %w", err)
	}
	return nil
}
