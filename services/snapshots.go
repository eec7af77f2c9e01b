package services

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/finacore/financials-api/models"
	"github.com/finacore/financials-api/utils"
)

// SnapshotService caches derived report payloads in Postgres so identical
// inputs over the same range are not recomputed. The cache key is
// (report_type, from_date, to_date, input_hash); a change in any fetched
// collection changes the hash and misses the cache.
type SnapshotService struct {
	db *sql.DB
}

func NewSnapshotService(db *sql.DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// InputHash is a SHA-256 over the canonical JSON of the deriver inputs.
func InputHash(inputs ...interface{}) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, input := range inputs {
		// Encode never fails on our model types.
		_ = enc.Encode(input)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the cached payload for the key, or found=false on a miss.
func (s *SnapshotService) Lookup(ctx context.Context, reportType string, from, to models.Date, hash string) (json.RawMessage, bool, error) {
	query := `
		SELECT payload FROM report_snapshots
		WHERE report_type = $1 AND from_date = $2 AND to_date = $3 AND input_hash = $4
		ORDER BY created_at DESC
		LIMIT 1
	`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query,
		reportType, from.Format("2006-01-02"), to.Format("2006-01-02"), hash,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return payload, true, nil
}

// Store persists a freshly derived report under the cache key. Stale
// snapshots for the same report and range (older input hashes) are replaced
// in the same transaction.
func (s *SnapshotService) Store(ctx context.Context, reportType string, from, to models.Date, hash string, report interface{}) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}

	fromStr := from.Format("2006-01-02")
	toStr := to.Format("2006-01-02")

	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		staleQuery := `
			DELETE FROM report_snapshots
			WHERE report_type = $1 AND from_date = $2 AND to_date = $3 AND input_hash <> $4
		`
		if _, err := tx.ExecContext(ctx, staleQuery, reportType, fromStr, toStr, hash); err != nil {
			return err
		}

		insertQuery := `
			INSERT INTO report_snapshots (id, report_type, from_date, to_date, input_hash, payload, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.ExecContext(ctx, insertQuery,
			uuid.New().String(), reportType, fromStr, toStr, hash, payload, time.Now())
		return err
	})
}

// CleanExpired drops snapshots older than 30 days and returns how many went.
func (s *SnapshotService) CleanExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM report_snapshots WHERE created_at < NOW() - INTERVAL '30 days'`)
	if err != nil {
		return 0, err
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
