package content

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"codeslabs/models"
)

// SaveContactMessage stores a validated message; comments must already be sanitized.
func (s *Store) SaveContactMessage(ctx context.Context, in models.ContactInput) (models.ContactMessage, error) {
	msg := models.ContactMessage{
		ContactName: in.ContactName,
		CompanyName: in.CompanyName,
		Email:       in.Email,
		Phone:       in.Phone,
		Comments:    in.Comments,
		CreatedAt:   s.now(),
	}
	err := s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&msg).Returning("id").Exec(ctx)
		return err
	})
	if err != nil {
		return models.ContactMessage{}, fmt.Errorf("save contact message: %w", err)
	}
	return msg, nil
}

func (s *Store) MarkDelivered(ctx context.Context, id int64) error {
	err := s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*models.ContactMessage)(nil)).
			Set("delivered = ?", true).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("mark contact message %d delivered: %w", id, err)
	}
	return nil
}

// ListContactMessages returns the newest messages first.
func (s *Store) ListContactMessages(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	msgs := make([]models.ContactMessage, 0)
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&msgs).OrderExpr("cm.id DESC").Limit(limit).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return msgs, nil
}
