package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/landing-generator/internal/session"
	"github.com/jonathan/landing-generator/internal/types"
)

// SessionSummary is one row of ListSessions.
type SessionSummary struct {
	ID             string            `json:"id"`
	TipoLanding    types.LandingType `json:"tipo_landing"`
	NombreProducto string            `json:"nombre_producto"`
	Aprobadas      int               `json:"aprobadas"`
	Total          int               `json:"total"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// sessionRow holds the column values written for a document.
type sessionRow struct {
	id             string
	tipoLanding    string
	nombreProducto string
	aprobadas      int
	total          int
	document       []byte
}

func newSessionRow(doc *types.Document) (sessionRow, error) {
	if doc.ID == "" {
		return sessionRow{}, fmt.Errorf("document has no id")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return sessionRow{}, fmt.Errorf("failed to marshal document: %w", err)
	}

	progress := session.ComputeProgress(doc)
	return sessionRow{
		id:             doc.ID,
		tipoLanding:    string(doc.TipoLanding),
		nombreProducto: doc.NombreProducto,
		aprobadas:      progress.Approved,
		total:          progress.Total,
		document:       data,
	}, nil
}

// Load returns the stored document, or nil when no row exists.
func (db *DB) Load(ctx context.Context, id string) (*types.Document, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM landing_sessions WHERE id = $1`,
		id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", id, err)
	}
	return &doc, nil
}

// Save inserts or replaces a document.
func (db *DB) Save(ctx context.Context, doc *types.Document) error {
	row, err := newSessionRow(doc)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO landing_sessions (id, tipo_landing, nombre_producto, aprobadas, total, document)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
			tipo_landing = $2, nombre_producto = $3, aprobadas = $4, total = $5,
			document = $6, updated_at = NOW()`,
		row.id, row.tipoLanding, row.nombreProducto, row.aprobadas, row.total, row.document,
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", doc.ID, err)
	}
	return nil
}

// Delete removes a document. Deleting a missing id is not an error.
func (db *DB) Delete(ctx context.Context, id string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM landing_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// ListSessions returns the most recently updated sessions first.
func (db *DB) ListSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, tipo_landing, nombre_producto, aprobadas, total, updated_at
		 FROM landing_sessions
		 ORDER BY updated_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var s SessionSummary
		var tipo string
		if err := rows.Scan(&s.ID, &tipo, &s.NombreProducto, &s.Aprobadas, &s.Total, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.TipoLanding = types.LandingType(tipo)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
