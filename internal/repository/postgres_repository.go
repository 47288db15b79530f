package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/mgrech/go_sales/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "sales_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// --- products ---

func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (id, name, price_amount, price_currency, type, removed, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Price.Amount,
		product.Price.Currency,
		product.Type,
		product.Removed,
		product.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT id, name, price_amount, price_currency, type, removed, created_at
	          FROM products WHERE id = $1`

	var product domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price.Amount,
		&product.Price.Currency,
		&product.Type,
		&product.Removed,
		&product.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product by id: %w", err)
	}
	return &product, nil
}

func (r *Repository) FindEquivalent(ctx context.Context, productID uuid.UUID, productType domain.ProductType) (*domain.Product, error) {
	query := `SELECT id, name, price_amount, price_currency, type, removed, created_at
	          FROM products
	          WHERE type = $1 AND removed = FALSE AND id <> $2
	          ORDER BY created_at DESC
	          LIMIT 1`

	var product domain.Product
	err := r.db.QueryRowContext(ctx, query, productType, productID).Scan(
		&product.ID,
		&product.Name,
		&product.Price.Amount,
		&product.Price.Currency,
		&product.Type,
		&product.Removed,
		&product.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query equivalent product: %w", err)
	}
	return &product, nil
}

func (r *Repository) MarkProductRemoved(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET removed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark product removed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark product removed: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// --- clients ---

func (r *Repository) CreateClient(ctx context.Context, client *domain.Client) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO clients (id, name) VALUES ($1, $2)`, client.ID, client.Name)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *Repository) GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM clients WHERE id = $1`, id).Scan(&client.ID, &client.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query client by id: %w", err)
	}
	return &client, nil
}

// --- reservations ---

func (r *Repository) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	itemsJSON, err := json.Marshal(reservation.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal reservation items: %w", err)
	}

	query := `INSERT INTO reservations (id, status, client_id, client_name, items, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, insertErr := r.db.ExecContext(ctx, query,
		reservation.ID,
		reservation.Status,
		reservation.Client.ClientID,
		reservation.Client.Name,
		itemsJSON,
		reservation.CreatedAt)
	if insertErr != nil {
		return fmt.Errorf("insert reservation: %w", insertErr)
	}
	return nil
}

func (r *Repository) GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	query := `SELECT id, status, client_id, client_name, items, created_at
	          FROM reservations WHERE id = $1`

	var reservation domain.Reservation
	var itemsJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.Status,
		&reservation.Client.ClientID,
		&reservation.Client.Name,
		&itemsJSON,
		&reservation.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query reservation by id: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &reservation.Items); err != nil {
		return nil, fmt.Errorf("unmarshal reservation items: %w", err)
	}
	return &reservation, nil
}

func (r *Repository) SaveReservation(ctx context.Context, reservation *domain.Reservation) error {
	itemsJSON, err := json.Marshal(reservation.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal reservation items: %w", err)
	}

	query := `UPDATE reservations SET status = $2, items = $3 WHERE id = $1`

	res, updateErr := r.db.ExecContext(ctx, query, reservation.ID, reservation.Status, itemsJSON)
	if updateErr != nil {
		return fmt.Errorf("update reservation: %w", updateErr)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// --- invoices + outbox ---

type invoiceIssuedPayload struct {
	InvoiceID string               `json:"invoice_id"`
	Client    domain.ClientData    `json:"client"`
	Lines     []domain.InvoiceLine `json:"lines"`
	IssuedAt  string               `json:"issued_at"`
}

// CreateInvoice writes the invoice and its outbox event in one transaction
// so the poller never sees an invoice without an event or vice versa.
func (r *Repository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	linesJSON, err := json.Marshal(invoice.Lines)
	if err != nil {
		return fmt.Errorf("failed to marshal invoice lines: %w", err)
	}

	payload, err := json.Marshal(invoiceIssuedPayload{
		InvoiceID: invoice.ID.String(),
		Client:    invoice.Client,
		Lines:     invoice.Lines,
		IssuedAt:  invoice.IssuedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO invoices (id, client_id, client_name, lines, issued_at)
	          VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, query,
		invoice.ID,
		invoice.Client.ClientID,
		invoice.Client.Name,
		linesJSON,
		invoice.IssuedAt); err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	outboxQuery := `INSERT INTO invoice_outbox (aggregate_id, event_type, payload)
	                VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, outboxQuery, invoice.ID.String(), "invoice.issued", payload); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit invoice tx: %w", err)
	}
	return nil
}

func (r *Repository) GetInvoiceByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT id, client_id, client_name, lines, issued_at
	          FROM invoices WHERE id = $1`

	var invoice domain.Invoice
	var linesJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&invoice.ID,
		&invoice.Client.ClientID,
		&invoice.Client.Name,
		&linesJSON,
		&invoice.IssuedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query invoice by id: %w", err)
	}

	if err := json.Unmarshal(linesJSON, &invoice.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal invoice lines: %w", err)
	}
	return &invoice, nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, aggregate_id, event_type, payload
	          FROM invoice_outbox
	          WHERE processed = FALSE
	          ORDER BY id
	          LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		var ev OutboxEvent
		if err := rows.Scan(&ev.ID, &ev.AggregateID, &ev.EventType, &ev.Payload); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		events = append(events, &ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE invoice_outbox SET processed = TRUE, processed_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark event as processed: %w", err)
	}
	return nil
}
