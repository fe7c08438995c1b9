package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/dbsmedya/gomissing/internal/dataset"
	"github.com/dbsmedya/gomissing/internal/logger"
)

// VerificationMethod defines how a cached report is checked against a
// fresh computation.
type VerificationMethod string

const (
	// MethodCounts compares missing counts per field path (fast)
	MethodCounts VerificationMethod = "counts"
	// MethodSHA256 hashes the full row including key lists (slower but more thorough)
	MethodSHA256 VerificationMethod = "sha256"
	// MethodSkip skips verification entirely
	MethodSkip VerificationMethod = "skip"
)

// VerifyResult holds verification results for a single field path.
type VerifyResult struct {
	Field        string
	Method       VerificationMethod
	CachedCount  int64
	FreshCount   int64
	CachedHash   string
	FreshHash    string
	Match        bool
	ErrorMessage string
}

// VerifyStats contains overall verification statistics.
type VerifyStats struct {
	FieldsVerified int
	FieldsPassed   int
	FieldsFailed   int
	Method         VerificationMethod
}

// Verifier checks a cached report against a fresh computation over the
// current dataset. A stale cache is the main hazard of the verbatim
// cache reload: the dataset may have changed since the report was
// persisted.
type Verifier struct {
	ds        *dataset.Dataset
	engine    Engine
	cachePath string
	method    VerificationMethod
	logger    *logger.Logger
}

// NewVerifier creates a verifier for the given dataset and cache file.
func NewVerifier(ds *dataset.Dataset, eng Engine, cachePath string, method VerificationMethod, log *logger.Logger) (*Verifier, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	if cachePath == "" {
		return nil, fmt.Errorf("cache path is empty")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	if method == "" {
		method = MethodCounts
	}

	return &Verifier{
		ds:        ds,
		engine:    eng,
		cachePath: cachePath,
		method:    method,
		logger:    log,
	}, nil
}

// Verify recomputes the report and compares it field by field against
// the cached one. The comparison stops at the first mismatching field.
func (v *Verifier) Verify(ctx context.Context) (*VerifyStats, error) {
	if v.method == MethodSkip {
		v.logger.Info("Verification SKIPPED (method=skip)")
		return &VerifyStats{Method: MethodSkip}, nil
	}

	stats := &VerifyStats{Method: v.method}

	cached, err := loadCache(v.cachePath)
	if err != nil {
		return nil, err
	}

	// An empty cache path makes the builder recompute unconditionally.
	fresh, err := NewBuilder(v.ds, v.engine, "", v.logger).Build(ctx)
	if err != nil {
		return nil, err
	}

	if cached.Len() != fresh.Len() {
		return stats, fmt.Errorf("field count mismatch: cached=%d, fresh=%d (schema changed?)",
			cached.Len(), fresh.Len())
	}

	v.logger.Infof("Starting verification (method=%s) for %d field paths", v.method, fresh.Len())

	for _, freshRow := range fresh.Rows() {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("verification interrupted: %w", err)
		}

		cachedRow, ok := cached.Row(freshRow.Field)
		if !ok {
			return stats, fmt.Errorf("field %q missing from cached report", freshRow.Field)
		}

		var result *VerifyResult
		switch v.method {
		case MethodCounts:
			result = verifyByCounts(cachedRow, freshRow)
		case MethodSHA256:
			result, err = verifyBySHA256(cachedRow, freshRow)
			if err != nil {
				return stats, fmt.Errorf("verification failed for field %s: %w", freshRow.Field, err)
			}
		default:
			return stats, fmt.Errorf("unsupported verification method: %s", v.method)
		}

		stats.FieldsVerified++

		if result.Match {
			stats.FieldsPassed++
			v.logger.WithFieldPath(freshRow.Field).Debugf("Verification PASSED")
		} else {
			stats.FieldsFailed++
			v.logger.WithFieldPath(freshRow.Field).Errorf("Verification FAILED: %s", result.ErrorMessage)
			return stats, fmt.Errorf("verification mismatch in field %s: %s", freshRow.Field, result.ErrorMessage)
		}
	}

	v.logger.Infof("Verification complete: %d fields verified, %d passed, %d failed",
		stats.FieldsVerified, stats.FieldsPassed, stats.FieldsFailed)

	return stats, nil
}

// verifyByCounts compares missing counts between the cached and fresh rows.
func verifyByCounts(cached, fresh Row) *VerifyResult {
	result := &VerifyResult{
		Field:       fresh.Field,
		Method:      MethodCounts,
		CachedCount: cached.Counts,
		FreshCount:  fresh.Counts,
		Match:       cached.Counts == fresh.Counts,
	}
	if !result.Match {
		result.ErrorMessage = fmt.Sprintf("count mismatch: cached=%d, fresh=%d",
			cached.Counts, fresh.Counts)
	}
	return result
}

// verifyBySHA256 compares hashes of the full rows, catching key-list and
// percentage drift that equal counts would hide.
func verifyBySHA256(cached, fresh Row) (*VerifyResult, error) {
	cachedHash, err := rowHash(cached)
	if err != nil {
		return nil, fmt.Errorf("failed to hash cached row: %w", err)
	}
	freshHash, err := rowHash(fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to hash fresh row: %w", err)
	}

	result := &VerifyResult{
		Field:       fresh.Field,
		Method:      MethodSHA256,
		CachedCount: cached.Counts,
		FreshCount:  fresh.Counts,
		CachedHash:  cachedHash,
		FreshHash:   freshHash,
		Match:       cachedHash == freshHash,
	}
	if !result.Match {
		if cached.Counts != fresh.Counts {
			result.ErrorMessage = fmt.Sprintf("count mismatch: cached=%d, fresh=%d",
				cached.Counts, fresh.Counts)
		} else {
			result.ErrorMessage = fmt.Sprintf("hash mismatch: cached=%s, fresh=%s",
				cachedHash[:16], freshHash[:16])
		}
	}
	return result, nil
}

// rowHash computes a SHA256 over the row's canonical JSON form. Key
// records marshal with their field order preserved, so the hash is
// stable across runs.
func rowHash(row Row) (string, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
