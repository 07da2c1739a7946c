package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veilmark/riftgate/internal/game/effect"
)

// EffectRepository persists per-character active effect snapshots.
// Instant/OnStack payloads already took effect before a save, so a
// load hands the rows straight to Manager.Restore.
type EffectRepository struct {
	db *pgxpool.Pool
}

// NewEffectRepository creates a new EffectRepository.
func NewEffectRepository(db *pgxpool.Pool) *EffectRepository {
	return &EffectRepository{db: db}
}

// LoadByCharacterID loads all saved effect snapshots for a character.
func (r *EffectRepository) LoadByCharacterID(ctx context.Context, charID int64) ([]effect.InstanceSnapshot, error) {
	query := `
		SELECT definition_id, stacks, remaining, tick_accumulator, instance_token
		FROM character_effects
		WHERE character_id = $1
		ORDER BY instance_token
	`

	rows, err := r.db.Query(ctx, query, charID)
	if err != nil {
		return nil, fmt.Errorf("querying effects for character %d: %w", charID, err)
	}
	defer rows.Close()

	snaps := make([]effect.InstanceSnapshot, 0, 8)
	for rows.Next() {
		var s effect.InstanceSnapshot
		var token int64
		if err := rows.Scan(&s.DefinitionID, &s.Stacks, &s.Remaining, &s.TickAccumulator, &token); err != nil {
			return nil, fmt.Errorf("scanning effect row: %w", err)
		}
		s.Token = uint64(token)
		snaps = append(snaps, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating effect rows: %w", err)
	}

	return snaps, nil
}

// Save persists all active effects of a character (full rewrite).
// Deletes old rows and inserts the new set in one transaction.
func (r *EffectRepository) Save(ctx context.Context, charID int64, snaps []effect.InstanceSnapshot) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// Rollback after commit is expected to fail
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM character_effects WHERE character_id = $1`, charID); err != nil {
		return fmt.Errorf("deleting existing effects: %w", err)
	}

	for _, s := range snaps {
		if _, err := tx.Exec(ctx,
			`INSERT INTO character_effects (character_id, instance_token, definition_id, stacks, remaining, tick_accumulator)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			charID, int64(s.Token), s.DefinitionID, s.Stacks, s.Remaining, s.TickAccumulator,
		); err != nil {
			return fmt.Errorf("inserting effect %q: %w", s.DefinitionID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing effects save: %w", err)
	}

	return nil
}

// DeleteByCharacterID drops every saved effect for a character.
func (r *EffectRepository) DeleteByCharacterID(ctx context.Context, charID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM character_effects WHERE character_id = $1`, charID); err != nil {
		return fmt.Errorf("deleting effects for character %d: %w", charID, err)
	}
	return nil
}
