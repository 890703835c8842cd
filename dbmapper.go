package main

import (
	"database/sql"
	"time"

	"github.com/mwhitlock/weatherchat/internal/database"
)

func answerToCreateConversationParams(answer Answer, retention time.Duration) database.CreateConversationParams {
	return database.CreateConversationParams{
		UserID:     nullString(answer.UserID),
		SessionID:  nullString(answer.SessionID),
		Query:      answer.Query,
		Response:   answer.ResponseText,
		AiEnhanced: answer.AIEnhanced,
		CreatedAt:  answer.Timestamp,
		ExpiresAt:  answer.Timestamp.Add(retention),
	}
}

func databaseConversationToRecord(c database.Conversation) conversationRecord {
	return conversationRecord{
		Query:      c.Query,
		Response:   c.Response,
		UserID:     c.UserID.String,
		SessionID:  c.SessionID.String,
		Timestamp:  c.CreatedAt,
		AIEnhanced: c.AiEnhanced,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
