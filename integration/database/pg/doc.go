// Package pg manages PostgreSQL connectivity for authkit: a pgx connection
// pool with startup retries, goose migrations, and a health check.
//
//	cfg := pg.Config{ConnectionString: os.Getenv("PG_CONN_URL"), RetryAttempts: 3}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	// Migrations live in an embed.FS next to the schema owner.
//	if err := pg.Migrate(ctx, pool, user.Migrations, cfg, log); err != nil {
//		return err
//	}
//
//	health := pg.Healthcheck(pool)
//
// Connect retries only while establishing the pool. Queries issued later are
// never retried here.
//
// # Transactions
//
// WithTx attaches a pgx.Tx to a context and TxFromContext retrieves it, so a
// repository can join a transaction started by its caller:
//
//	tx, err := pool.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback(ctx)
//
//	ctx = pg.WithTx(ctx, tx)
//	if err := users.UpdateRememberHash(ctx, id, nil); err != nil {
//		return err
//	}
//	return tx.Commit(ctx)
//
// # Errors
//
// IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError and
// IsTxClosedError classify driver errors without leaking pgconn types.
package pg
