// Command seed-db runs migrations and loads the reference coupon set plus a
// handful of demo customers into PostgreSQL. Safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petrodist/fuel-orders/internal/domain/coupon"
	"github.com/petrodist/fuel-orders/internal/repository"
)

func main() {
	var (
		databaseURL   string
		demoCustomers bool
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.BoolVar(&demoCustomers, "demo-customers", false, "also insert demo customers")
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

	if err := run(ctx, databaseURL, demoCustomers); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL string, demoCustomers bool) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedCoupons(ctx, pool); err != nil {
		return errors.Wrap(err, "seed coupons")
	}

	if demoCustomers {
		if err := seedDemoCustomers(ctx, pool); err != nil {
			return errors.Wrap(err, "seed demo customers")
		}
	}

	return nil
}

const upsertCouponSQL = `INSERT INTO coupons (code, discount_type, value, product_kind, description, active)
	VALUES ($1, $2, $3, $4, $5, TRUE)
	ON CONFLICT (code) DO UPDATE SET
		discount_type = EXCLUDED.discount_type,
		value = EXCLUDED.value,
		product_kind = EXCLUDED.product_kind,
		description = EXCLUDED.description,
		active = TRUE`

func seedCoupons(ctx context.Context, pool *pgxpool.Pool) error {
	rules := coupon.BuiltinRules()
	slog.Info("upserting coupons", slog.Int("count", len(rules)))

	for _, rule := range rules {
		var kind *string
		if rule.Product != "" {
			k := string(rule.Product)
			kind = &k
		}
		if _, err := pool.Exec(ctx, upsertCouponSQL,
			rule.Code, string(rule.Type), rule.Value, kind, rule.Description,
		); err != nil {
			return errors.Wrapf(err, "upsert coupon %s", rule.Code)
		}

		slog.Info("upserted coupon", slog.String("code", rule.Code), slog.String("description", rule.Description))
	}

	return nil
}

type demoCustomer struct {
	name  string
	email string
	taxID string
}

func seedDemoCustomers(ctx context.Context, pool *pgxpool.Pool) error {
	demos := []demoCustomer{
		{name: "Posto Estrela Ltda", email: "compras@postoestrela.example", taxID: "12345678000190"},
		{name: "Transportadora Horizonte", email: "frota@horizonte.example", taxID: "98765432000155"},
		{name: "Fazenda Boa Vista", email: "contato@boavista.example", taxID: "45678912000133"},
	}

	slog.Info("inserting demo customers", slog.Int("count", len(demos)))

	const insertSQL = `INSERT INTO customers (id, name, email, tax_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING`

	for _, d := range demos {
		tag, err := pool.Exec(ctx, insertSQL, uuid.NewString(), d.name, d.email, d.taxID)
		if err != nil {
			return errors.Wrapf(err, "insert customer %s", d.email)
		}
		if tag.RowsAffected() == 0 {
			slog.Info("customer already present", slog.String("email", d.email))
			continue
		}

		slog.Info("inserted customer", slog.String("email", d.email))
	}

	return nil
}
