package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/returnhelper/returnsvc/internal/domain/errors"
	"github.com/returnhelper/returnsvc/internal/domain/model"
	"github.com/returnhelper/returnsvc/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool used by the storage, extracted so
// tests can substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type returnRepository struct {
	storage *Storage
}

type addressRepository struct {
	storage *Storage
}

type subscriptionRepository struct {
	storage *Storage
}

type pushTokenRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Returns() repository.ReturnRepository {
	return &returnRepository{storage: s}
}

func (s *Storage) Addresses() repository.AddressRepository {
	return &addressRepository{storage: s}
}

func (s *Storage) Subscriptions() repository.SubscriptionRepository {
	return &subscriptionRepository{storage: s}
}

func (s *Storage) PushTokens() repository.PushTokenRepository {
	return &pushTokenRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS addresses (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES users(id),
            label TEXT NOT NULL,
            street TEXT NOT NULL,
            apartment TEXT NOT NULL DEFAULT '',
            city TEXT NOT NULL,
            state TEXT NOT NULL,
            zip_code TEXT NOT NULL,
            is_default BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS returns (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL,
            scheduled_date TIMESTAMPTZ NOT NULL,
            time_window TEXT NOT NULL,
            address JSONB NOT NULL,
            driver_id TEXT NOT NULL DEFAULT '',
            driver_name TEXT NOT NULL DEFAULT '',
            driver_phone TEXT NOT NULL DEFAULT '',
            special_instructions TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            last_update TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS return_items (
            id TEXT PRIMARY KEY,
            return_id TEXT NOT NULL REFERENCES returns(id),
            retailer TEXT NOT NULL,
            product_name TEXT NOT NULL,
            qr_code TEXT NOT NULL DEFAULT '',
            size TEXT NOT NULL,
            fragile BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS status_updates (
            id SERIAL PRIMARY KEY,
            return_id TEXT NOT NULL REFERENCES returns(id),
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            notes TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
            user_id TEXT PRIMARY KEY REFERENCES users(id),
            plan TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'ACTIVE',
            returns_used INT NOT NULL DEFAULT 0,
            returns_limit INT NOT NULL DEFAULT -1,
            current_period_end TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS push_tokens (
            user_id TEXT NOT NULL REFERENCES users(id),
            token TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (user_id, token)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_returns_user ON returns(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_returns_status ON returns(status, last_update)`,
		`CREATE INDEX IF NOT EXISTS idx_status_updates_return ON status_updates(return_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (id, name, email, phone, role, password_hash)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	created := *user
	created.ID = uuid.NewString()
	err := r.storage.pool.QueryRow(ctx, query, created.ID, created.Name, created.Email, created.Phone, created.Role, created.PasswordHash).Scan(&created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, name, email, phone, role, password_hash, created_at FROM users WHERE email=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, name, email, phone, role, password_hash, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- AddressRepository implementation ---

func (r *addressRepository) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	created := *address
	created.ID = uuid.NewString()

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if created.IsDefault {
			if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default=FALSE WHERE user_id=$1`, created.UserID); err != nil {
				return err
			}
		}
		const query = `INSERT INTO addresses (id, user_id, label, street, apartment, city, state, zip_code, is_default)
                       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		_, err := tx.Exec(ctx, query, created.ID, created.UserID, created.Label, created.Street, created.Apartment, created.City, created.State, created.ZipCode, created.IsDefault)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *addressRepository) GetByID(ctx context.Context, id string) (*model.Address, error) {
	const query = `SELECT id, user_id, label, street, apartment, city, state, zip_code, is_default
                   FROM addresses WHERE id=$1`
	var a model.Address
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.UserID, &a.Label, &a.Street, &a.Apartment, &a.City, &a.State, &a.ZipCode, &a.IsDefault)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID string) ([]model.Address, error) {
	const query = `SELECT id, user_id, label, street, apartment, city, state, zip_code, is_default
                   FROM addresses WHERE user_id=$1 ORDER BY is_default DESC, label`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Address
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.Street, &a.Apartment, &a.City, &a.State, &a.ZipCode, &a.IsDefault); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ReturnRepository implementation ---

const returnColumns = `id, user_id, status, scheduled_date, time_window, address,
                       driver_id, driver_name, driver_phone, special_instructions, created_at, last_update`

func (r *returnRepository) Create(ctx context.Context, ret *model.Return) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertReturn = `INSERT INTO returns (id, user_id, status, scheduled_date, time_window, address,
                              driver_id, driver_name, driver_phone, special_instructions, created_at, last_update)
                              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
		_, err := tx.Exec(ctx, insertReturn,
			ret.ID, ret.UserID, ret.Status, ret.ScheduledDate, ret.TimeWindow, ret.Address,
			ret.DriverID, ret.DriverName, ret.DriverPhone, ret.SpecialInstructions, ret.CreatedAt, ret.LastUpdate)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO return_items (id, return_id, retailer, product_name, qr_code, size, fragile)
                            VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for _, item := range ret.Items {
			if _, err := tx.Exec(ctx, insertItem, item.ID, ret.ID, item.Retailer, item.ProductName, item.QRCode, item.Size, item.Fragile); err != nil {
				return err
			}
		}

		const insertUpdate = `INSERT INTO status_updates (return_id, status, created_at, notes) VALUES ($1, $2, $3, $4)`
		for _, upd := range ret.StatusUpdates {
			if _, err := tx.Exec(ctx, insertUpdate, ret.ID, upd.Status, upd.Timestamp, upd.Notes); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *returnRepository) GetByID(ctx context.Context, id string) (*model.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id=$1`
	ret, err := r.scanReturn(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *returnRepository) ListByUser(ctx context.Context, userID string) ([]model.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE user_id=$1 ORDER BY created_at DESC`
	return r.fetchReturns(ctx, true, query, userID)
}

func (r *returnRepository) ListByDriver(ctx context.Context, driverID string) ([]model.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE driver_id=$1 ORDER BY scheduled_date`
	return r.fetchReturns(ctx, true, query, driverID)
}

func (r *returnRepository) SelectBatchForTracking(ctx context.Context, limit int) ([]model.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns
              WHERE status IN ('DRIVER_ASSIGNED', 'PICKED_UP', 'IN_TRANSIT', 'DROPPED_OFF')
              ORDER BY last_update
              LIMIT $1`
	return r.fetchReturns(ctx, false, query, limit)
}

func (r *returnRepository) ListAvailablePickups(ctx context.Context) ([]model.Pickup, error) {
	const query = `SELECT r.id, u.name, r.address, r.scheduled_date, r.time_window, r.status
                   FROM returns r
                   JOIN users u ON u.id = r.user_id
                   WHERE r.status=$1 AND r.driver_id=''
                   ORDER BY r.scheduled_date`
	rows, err := r.storage.pool.Query(ctx, query, model.StatusScheduled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pickups []model.Pickup
	for rows.Next() {
		var p model.Pickup
		if err := rows.Scan(&p.ID, &p.CustomerName, &p.Address, &p.ScheduledDate, &p.TimeWindow, &p.Status); err != nil {
			return nil, err
		}
		pickups = append(pickups, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range pickups {
		items, err := r.loadItems(ctx, pickups[i].ID)
		if err != nil {
			return nil, err
		}
		pickups[i].Items = items
	}
	return pickups, nil
}

func (r *returnRepository) AppendStatusUpdate(ctx context.Context, returnID string, expected model.ReturnStatus, update model.StatusUpdate) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateReturn = `UPDATE returns SET status=$1, last_update=$2 WHERE id=$3 AND status=$4`
		tag, err := tx.Exec(ctx, updateReturn, update.Status, update.Timestamp, returnID, expected)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return r.staleUpdateError(ctx, tx, returnID)
		}

		const insertUpdate = `INSERT INTO status_updates (return_id, status, created_at, notes) VALUES ($1, $2, $3, $4)`
		_, err = tx.Exec(ctx, insertUpdate, returnID, update.Status, update.Timestamp, update.Notes)
		return err
	})
}

func (r *returnRepository) AssignDriver(ctx context.Context, returnID string, expected model.ReturnStatus, driver *model.User, update model.StatusUpdate) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateReturn = `UPDATE returns
                              SET status=$1, last_update=$2, driver_id=$3, driver_name=$4, driver_phone=$5
                              WHERE id=$6 AND status=$7 AND driver_id=''`
		tag, err := tx.Exec(ctx, updateReturn, update.Status, update.Timestamp, driver.ID, driver.Name, driver.Phone, returnID, expected)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return r.staleUpdateError(ctx, tx, returnID)
		}

		const insertUpdate = `INSERT INTO status_updates (return_id, status, created_at, notes) VALUES ($1, $2, $3, $4)`
		_, err = tx.Exec(ctx, insertUpdate, returnID, update.Status, update.Timestamp, update.Notes)
		return err
	})
}

// staleUpdateError distinguishes a missing return from a concurrent update
// when an optimistic status change matched zero rows.
func (r *returnRepository) staleUpdateError(ctx context.Context, tx pgx.Tx, returnID string) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM returns WHERE id=$1)`, returnID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}
	return domainErrors.ErrConflict
}

func (r *returnRepository) scanReturn(row pgx.Row) (*model.Return, error) {
	var ret model.Return
	err := row.Scan(&ret.ID, &ret.UserID, &ret.Status, &ret.ScheduledDate, &ret.TimeWindow, &ret.Address,
		&ret.DriverID, &ret.DriverName, &ret.DriverPhone, &ret.SpecialInstructions, &ret.CreatedAt, &ret.LastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

func (r *returnRepository) fetchReturns(ctx context.Context, withChildren bool, query string, args ...any) ([]model.Return, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Return
	for rows.Next() {
		var ret model.Return
		if err := rows.Scan(&ret.ID, &ret.UserID, &ret.Status, &ret.ScheduledDate, &ret.TimeWindow, &ret.Address,
			&ret.DriverID, &ret.DriverName, &ret.DriverPhone, &ret.SpecialInstructions, &ret.CreatedAt, &ret.LastUpdate); err != nil {
			return nil, err
		}
		result = append(result, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if withChildren {
		for i := range result {
			if err := r.loadChildren(ctx, &result[i]); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func (r *returnRepository) loadChildren(ctx context.Context, ret *model.Return) error {
	items, err := r.loadItems(ctx, ret.ID)
	if err != nil {
		return err
	}
	ret.Items = items

	const query = `SELECT status, created_at, notes FROM status_updates WHERE return_id=$1 ORDER BY created_at, id`
	rows, err := r.storage.pool.Query(ctx, query, ret.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var updates []model.StatusUpdate
	for rows.Next() {
		var upd model.StatusUpdate
		if err := rows.Scan(&upd.Status, &upd.Timestamp, &upd.Notes); err != nil {
			return err
		}
		updates = append(updates, upd)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	ret.StatusUpdates = updates
	return nil
}

func (r *returnRepository) loadItems(ctx context.Context, returnID string) ([]model.ReturnItem, error) {
	const query = `SELECT id, retailer, product_name, qr_code, size, fragile FROM return_items WHERE return_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, returnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.ReturnItem
	for rows.Next() {
		var item model.ReturnItem
		if err := rows.Scan(&item.ID, &item.Retailer, &item.ProductName, &item.QRCode, &item.Size, &item.Fragile); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// --- SubscriptionRepository implementation ---

func (r *subscriptionRepository) GetByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	const query = `SELECT user_id, plan, status, returns_used, returns_limit, current_period_end
                   FROM subscriptions WHERE user_id=$1`
	var sub model.Subscription
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&sub.UserID, &sub.Plan, &sub.Status, &sub.ReturnsUsed, &sub.ReturnsLimit, &sub.CurrentPeriodEnd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) IncrementUsage(ctx context.Context, userID string) error {
	const query = `UPDATE subscriptions SET returns_used = returns_used + 1 WHERE user_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

// --- PushTokenRepository implementation ---

func (r *pushTokenRepository) Save(ctx context.Context, userID, token string) error {
	const query = `INSERT INTO push_tokens (user_id, token) VALUES ($1, $2)
                   ON CONFLICT (user_id, token) DO UPDATE SET updated_at = NOW()`
	_, err := r.storage.pool.Exec(ctx, query, userID, token)
	return err
}

func (r *pushTokenRepository) ListByUser(ctx context.Context, userID string) ([]string, error) {
	const query = `SELECT token FROM push_tokens WHERE user_id=$1 ORDER BY updated_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
