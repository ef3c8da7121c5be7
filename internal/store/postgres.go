package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jannysd28/technohu/internal/models"
)

// PostgresStore is the persistent Store backend. Business logic talks to
// the Store interface only, so swapping it in is a wiring change in cmd/api.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, pings and bootstraps the schema.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.Println("Connected to Postgres successfully")
	return s, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Pool exposes the underlying pool for operator tooling (cmd/adminutil).
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

// ensureSchema creates the marketplace tables if missing. Idempotent so the
// server can start against a fresh database.
func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            username TEXT NOT NULL,
            email TEXT NOT NULL,
            password TEXT NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL CHECK (role IN ('buyer','seller','both','admin')),
            status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','busy','unavailable','verified')),
            status_message TEXT NOT NULL DEFAULT '',
            avatar TEXT NOT NULL DEFAULT '',
            location TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_lower ON users (LOWER(username));
        CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email));

        CREATE TABLE IF NOT EXISTS projects (
            id BIGSERIAL PRIMARY KEY,
            seller_id BIGINT NOT NULL REFERENCES users(id),
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price_cents BIGINT NOT NULL CHECK (price_cents >= 100),
            project_type TEXT NOT NULL CHECK (project_type IN ('cli','gui','web')),
            language_tags TEXT NOT NULL DEFAULT '',
            file_path TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );

        CREATE TABLE IF NOT EXISTS requests (
            id BIGSERIAL PRIMARY KEY,
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            seller_id BIGINT NOT NULL REFERENCES users(id),
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price_cents BIGINT NOT NULL CHECK (price_cents > 0),
            status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','accepted','rejected','completed')),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );

        CREATE TABLE IF NOT EXISTS pitches (
            id BIGSERIAL PRIMARY KEY,
            seller_id BIGINT NOT NULL REFERENCES users(id),
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            message TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE INDEX IF NOT EXISTS idx_pitches_seller_created ON pitches(seller_id, created_at);

        CREATE TABLE IF NOT EXISTS ratings (
            id BIGSERIAL PRIMARY KEY,
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            seller_id BIGINT NOT NULL REFERENCES users(id),
            project_id BIGINT NULL REFERENCES projects(id),
            request_id BIGINT NULL REFERENCES requests(id),
            rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
            review TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );

        CREATE TABLE IF NOT EXISTS uploads (
            id BIGSERIAL PRIMARY KEY,
            request_id BIGINT NOT NULL REFERENCES requests(id),
            seller_id BIGINT NOT NULL REFERENCES users(id),
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            file_name TEXT NOT NULL,
            file_path TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved')),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE INDEX IF NOT EXISTS idx_uploads_request ON uploads(request_id);

        CREATE TABLE IF NOT EXISTS payments (
            id BIGSERIAL PRIMARY KEY,
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            seller_id BIGINT NULL,
            amount_cents BIGINT NOT NULL,
            currency TEXT NOT NULL DEFAULT 'usd',
            project_id BIGINT NULL,
            request_id BIGINT NULL,
            reference TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','completed','failed')),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
    `)
	if err != nil {
		return fmt.Errorf("store: ensure schema: %w", err)
	}
	return nil
}

const userColumns = `id, username, email, password, name, role, status, status_message, avatar, location, created_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Name, &u.Role,
		&u.Status, &u.StatusMessage, &u.Avatar, &u.Location, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// Users

func (s *PostgresStore) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	row := s.pool.QueryRow(ctx, `
        INSERT INTO users (username, email, password, name, role, status, status_message, avatar, location)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+userColumns,
		u.Username, u.Email, u.Password, u.Name, u.Role, u.Status, u.StatusMessage, u.Avatar, u.Location)
	return scanUser(row)
}

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (models.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username))
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (models.User, error) {
	row := s.pool.QueryRow(ctx, `
        UPDATE users SET
            name = COALESCE($1, name),
            role = COALESCE($2, role),
            status = COALESCE($3, status),
            status_message = COALESCE($4, status_message),
            avatar = COALESCE($5, avatar),
            location = COALESCE($6, location)
        WHERE id = $7
        RETURNING `+userColumns,
		upd.Name, (*string)(upd.Role), (*string)(upd.Status), upd.StatusMessage, upd.Avatar, upd.Location, id)
	return scanUser(row)
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (s *PostgresStore) ListSellers(ctx context.Context, f SellerFilter) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role IN ('seller','both')`
	args := []any{}
	if f.Status != "" {
		query += ` AND status = $1`
		args = append(args, f.Status)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]models.User, error) {
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Name, &u.Role,
			&u.Status, &u.StatusMessage, &u.Avatar, &u.Location, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Projects

const projectColumns = `id, seller_id, title, description, price_cents, project_type, language_tags, file_path, created_at`

func (s *PostgresStore) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	row := s.pool.QueryRow(ctx, `
        INSERT INTO projects (seller_id, title, description, price_cents, project_type, language_tags, file_path)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+projectColumns,
		p.SellerID, p.Title, p.Description, p.PriceCents, p.ProjectType, p.LanguageTags, p.FilePath)
	return scanProject(row)
}

func scanProject(row pgx.Row) (models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.SellerID, &p.Title, &p.Description, &p.PriceCents,
		&p.ProjectType, &p.LanguageTags, &p.FilePath, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Project{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) GetProject(ctx context.Context, id int64) (models.Project, error) {
	return scanProject(s.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

func (s *PostgresStore) ListProjects(ctx context.Context, sellerID int64) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	args := []any{}
	if sellerID != 0 {
		query += ` WHERE seller_id = $1`
		args = append(args, sellerID)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Title, &p.Description, &p.PriceCents,
			&p.ProjectType, &p.LanguageTags, &p.FilePath, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Requests

const requestColumns = `id, buyer_id, seller_id, title, description, price_cents, status, created_at`

func scanRequest(row pgx.Row) (models.Request, error) {
	var r models.Request
	err := row.Scan(&r.ID, &r.BuyerID, &r.SellerID, &r.Title, &r.Description,
		&r.PriceCents, &r.Status, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Request{}, ErrNotFound
	}
	return r, err
}

func (s *PostgresStore) CreateRequest(ctx context.Context, r models.Request) (models.Request, error) {
	row := s.pool.QueryRow(ctx, `
        INSERT INTO requests (buyer_id, seller_id, title, description, price_cents, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING `+requestColumns,
		r.BuyerID, r.SellerID, r.Title, r.Description, r.PriceCents, r.Status)
	return scanRequest(row)
}

func (s *PostgresStore) GetRequest(ctx context.Context, id int64) (models.Request, error) {
	return scanRequest(s.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id))
}

func (s *PostgresStore) ListRequests(ctx context.Context, f RequestFilter) ([]models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE 1=1`
	args := []any{}
	if f.BuyerID != 0 {
		args = append(args, f.BuyerID)
		query += fmt.Sprintf(` AND buyer_id = $%d`, len(args))
	}
	if f.SellerID != 0 {
		args = append(args, f.SellerID)
		query += fmt.Sprintf(` AND seller_id = $%d`, len(args))
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Request
	for rows.Next() {
		var r models.Request
		if err := rows.Scan(&r.ID, &r.BuyerID, &r.SellerID, &r.Title, &r.Description,
			&r.PriceCents, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus) (models.Request, error) {
	row := s.pool.QueryRow(ctx, `
        UPDATE requests SET status = $1 WHERE id = $2
        RETURNING `+requestColumns, status, id)
	return scanRequest(row)
}

// Pitches

func (s *PostgresStore) CreatePitch(ctx context.Context, p models.Pitch) (models.Pitch, error) {
	err := s.pool.QueryRow(ctx, `
        INSERT INTO pitches (seller_id, buyer_id, message)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`,
		p.SellerID, p.BuyerID, p.Message).Scan(&p.ID, &p.CreatedAt)
	return p, err
}

func (s *PostgresStore) ListPitches(ctx context.Context, f PitchFilter) ([]models.Pitch, error) {
	query := `SELECT id, seller_id, buyer_id, message, created_at FROM pitches WHERE 1=1`
	args := []any{}
	if f.BuyerID != 0 {
		args = append(args, f.BuyerID)
		query += fmt.Sprintf(` AND buyer_id = $%d`, len(args))
	}
	if f.SellerID != 0 {
		args = append(args, f.SellerID)
		query += fmt.Sprintf(` AND seller_id = $%d`, len(args))
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Pitch
	for rows.Next() {
		var p models.Pitch
		if err := rows.Scan(&p.ID, &p.SellerID, &p.BuyerID, &p.Message, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountPitchesSince(ctx context.Context, sellerID int64, since time.Time) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pitches WHERE seller_id = $1 AND created_at >= $2`,
		sellerID, since).Scan(&n)
	return n, err
}

// Ratings

func (s *PostgresStore) CreateRating(ctx context.Context, r models.Rating) (models.Rating, error) {
	err := s.pool.QueryRow(ctx, `
        INSERT INTO ratings (buyer_id, seller_id, project_id, request_id, rating, review)
        VALUES ($1, $2, NULLIF($3, 0), NULLIF($4, 0), $5, $6)
        RETURNING id, created_at`,
		r.BuyerID, r.SellerID, r.ProjectID, r.RequestID, r.Rating, r.Review).Scan(&r.ID, &r.CreatedAt)
	return r, err
}

func (s *PostgresStore) ListRatingsBySeller(ctx context.Context, sellerID int64) ([]models.Rating, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, buyer_id, seller_id, COALESCE(project_id, 0), COALESCE(request_id, 0), rating, review, created_at
        FROM ratings WHERE seller_id = $1`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.BuyerID, &r.SellerID, &r.ProjectID, &r.RequestID,
			&r.Rating, &r.Review, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Uploads

func (s *PostgresStore) CreateUpload(ctx context.Context, u models.Upload) (models.Upload, error) {
	err := s.pool.QueryRow(ctx, `
        INSERT INTO uploads (request_id, seller_id, buyer_id, file_name, file_path, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`,
		u.RequestID, u.SellerID, u.BuyerID, u.FileName, u.FilePath, u.Status).Scan(&u.ID, &u.CreatedAt)
	return u, err
}

func (s *PostgresStore) ListUploadsByRequest(ctx context.Context, requestID int64) ([]models.Upload, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, request_id, seller_id, buyer_id, file_name, file_path, status, created_at
        FROM uploads WHERE request_id = $1`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Upload
	for rows.Next() {
		var u models.Upload
		if err := rows.Scan(&u.ID, &u.RequestID, &u.SellerID, &u.BuyerID,
			&u.FileName, &u.FilePath, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Payments

func (s *PostgresStore) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	err := s.pool.QueryRow(ctx, `
        INSERT INTO payments (buyer_id, seller_id, amount_cents, currency, project_id, request_id, reference, status)
        VALUES ($1, NULLIF($2, 0), $3, $4, NULLIF($5, 0), NULLIF($6, 0), $7, $8)
        RETURNING id, created_at`,
		p.BuyerID, p.SellerID, p.AmountCents, p.Currency, p.ProjectID, p.RequestID, p.Reference, p.Status).
		Scan(&p.ID, &p.CreatedAt)
	return p, err
}
