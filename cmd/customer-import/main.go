// Command customer-import bulk-loads customers from gzipped NDJSON files.
//
// Each input line is an object with "name", "email" and "tax_id" fields.
// Files are parsed concurrently; rows failing email or tax ID validation are
// skipped and counted. Emails already seen in the run are deduplicated with a
// bloom filter, and the final insert goes through a staging table so rows
// colliding with existing customers are dropped instead of failing the batch.
package main

import (
	"bufio"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/petrodist/fuel-orders/internal/domain/customer"
	"github.com/petrodist/fuel-orders/internal/repository"
)

const (
	bloomCapacity = 10_000_000
	bloomFPR      = 0.001
	batchSize     = 5_000
	progressEvery = 100_000
)

type record struct {
	id    string
	name  string
	email customer.Email
	taxID customer.TaxID
}

// emailFilter wraps a bloom filter with a mutex; the underlying filter is not
// safe for concurrent writers.
type emailFilter struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
}

func (f *emailFilter) testAndAdd(email string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter.TestAndAddString(email)
}

func main() {
	var (
		dataDir     string
		databaseURL string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing customers*.ndjson.gz files")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, databaseURL); err != nil {
		slog.Error("customer import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("customer import completed successfully")
}

func run(ctx context.Context, dataDir, databaseURL string) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "customers*.ndjson.gz"))
	if err != nil {
		return errors.Wrap(err, "glob input files")
	}
	if len(files) == 0 {
		return errors.Errorf("no customers*.ndjson.gz files in %s", dataDir)
	}

	slog.Info("importing customers", slog.Int("files", len(files)))

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	var (
		skipped atomic.Uint64
		duped   atomic.Uint64
	)

	// The bloom filter dedupes emails across all files in a single pass. A
	// false positive drops a legitimate row, so the filter is sized well
	// above the expected input volume to keep that rate negligible.
	seen := &emailFilter{filter: bloom.NewWithEstimates(bloomCapacity, bloomFPR)}
	records := make(chan record, batchSize)

	g, gctx := errgroup.WithContext(ctx)

	parsers, pctx := errgroup.WithContext(gctx)
	for i, f := range files {
		parsers.Go(parseFile(pctx, i, f, seen, records, &skipped, &duped))
	}
	g.Go(func() error {
		defer close(records)
		return parsers.Wait()
	})

	var inserted int64
	g.Go(func() error {
		n, err := writeRecords(gctx, pool, records)
		inserted = n
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("import summary",
		slog.Int64("inserted", inserted),
		slog.Uint64("invalid_skipped", skipped.Load()),
		slog.Uint64("duplicates_skipped", duped.Load()),
	)

	return nil
}

func parseFile(
	ctx context.Context,
	idx int,
	path string,
	seen *emailFilter,
	out chan<- record,
	skipped, duped *atomic.Uint64,
) func() error {
	return func() error {
		var count uint64

		err := streamGzFile(ctx, path, func(line []byte) error {
			count++
			if count%progressEvery == 0 {
				slog.Info("parse progress", slog.Int("file", idx+1), slog.Uint64("lines", count))
			}

			rec, err := decodeCustomerLine(line)
			if err != nil {
				skipped.Add(1)
				return nil
			}

			if seen.testAndAdd(string(rec.email)) {
				duped.Add(1)
				return nil
			}

			select {
			case out <- rec:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			return errors.Wrapf(err, "parse file %s", path)
		}

		slog.Info("parse complete", slog.Int("file", idx+1), slog.Uint64("lines", count))
		return nil
	}
}

// decodeCustomerLine parses one NDJSON object and validates it into a record.
func decodeCustomerLine(line []byte) (record, error) {
	var name, email, taxID string

	d := jx.DecodeBytes(line)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "name":
			v, err := d.Str()
			name = v
			return err
		case "email":
			v, err := d.Str()
			email = v
			return err
		case "tax_id":
			v, err := d.Str()
			taxID = v
			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		return record{}, errors.Wrap(err, "decode line")
	}

	parsedEmail, err := customer.NewEmail(email)
	if err != nil {
		return record{}, err
	}
	parsedTaxID, err := customer.NewTaxID(taxID)
	if err != nil {
		return record{}, err
	}
	if name == "" {
		return record{}, customer.ErrEmptyName
	}

	return record{
		id:    uuid.NewString(),
		name:  name,
		email: parsedEmail,
		taxID: parsedTaxID,
	}, nil
}

// streamGzFile opens a gzip-compressed file and calls fn for each line.
func streamGzFile(ctx context.Context, path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(scanner.Bytes()) == 0 {
			continue
		}
		if err := fn(scanner.Bytes()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}

	return nil
}

// writeRecords copies batches into a staging table and merges them into
// customers, dropping rows whose email already exists.
func writeRecords(ctx context.Context, pool *pgxpool.Pool, records <-chan record) (int64, error) {
	const createStagingSQL = `CREATE TEMP TABLE customers_staging
		(LIKE customers INCLUDING DEFAULTS) ON COMMIT DROP`
	const mergeSQL = `INSERT INTO customers (id, name, email, tax_id)
		SELECT id, name, email, tax_id FROM customers_staging
		ON CONFLICT (email) DO NOTHING`

	var total int64
	batch := make([]record, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return errors.Wrap(err, "begin tx")
		}
		defer func() { _ = tx.Rollback(ctx) }()

		if _, err := tx.Exec(ctx, createStagingSQL); err != nil {
			return errors.Wrap(err, "create staging table")
		}

		rows := make([][]any, len(batch))
		for i, rec := range batch {
			rows[i] = []any{rec.id, rec.name, string(rec.email), string(rec.taxID)}
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"customers_staging"},
			[]string{"id", "name", "email", "tax_id"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return errors.Wrap(err, "copy batch")
		}

		tag, err := tx.Exec(ctx, mergeSQL)
		if err != nil {
			return errors.Wrap(err, "merge staging")
		}
		if err := tx.Commit(ctx); err != nil {
			return errors.Wrap(err, "commit batch")
		}

		total += tag.RowsAffected()
		slog.Info("batch written", slog.Int("rows", len(batch)), slog.Int64("total_inserted", total))
		batch = batch[:0]
		return nil
	}

	for rec := range records {
		batch = append(batch, rec)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}

	return total, nil
}
