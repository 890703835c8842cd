package main

import (
	"context"
)

// persistAnswer records a delivered answer in the conversation store and the
// Postgres archive. Persistence is best effort: the user already has their
// answer, so failures are logged and never propagated.
func (cfg *apiConfig) persistAnswer(ctx context.Context, answer Answer) {
	if err := cfg.conversations.Append(ctx, answer); err != nil {
		cfg.logger.Warn("couldn't store conversation turn", "user_id", answer.UserID, "error", err)
	}
	if _, err := cfg.dbQueries.CreateConversation(ctx, answerToCreateConversationParams(answer, cfg.retention)); err != nil {
		cfg.logger.Warn("couldn't archive conversation", "user_id", answer.UserID, "error", err)
	}
}
