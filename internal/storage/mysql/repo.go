package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hotel_finder/internal/adapters/observability"
	"hotel_finder/internal/domain"
)

const driverName = "mysql"

// fieldName guards the JSON paths spliced into SQL.
var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// table maps a collection onto its table name; only known collections pass.
func table(c domain.Collection) (string, error) {
	if _, err := domain.ParseCollection(c.String()); err != nil {
		return "", err
	}
	return c.String(), nil
}

// EnsureSchema creates the collection tables when they are missing.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	for _, c := range domain.Collections() {
		if _, err := r.db.ExecContext(ctx, fmt.Sprintf(createCollectionSQL, c)); err != nil {
			return fmt.Errorf("create %s: %w", c, err)
		}
	}
	return nil
}

// whereClause renders f as an OR of per-field regex matches plus its args.
func whereClause(f domain.Filter) (string, []any, error) {
	if f.MatchAll() {
		return "", nil, nil
	}
	parts := make([]string, 0, len(f.Fields))
	args := make([]any, 0, len(f.Fields))
	for _, fld := range f.Fields {
		if !fieldName.MatchString(fld) {
			return "", nil, fmt.Errorf("invalid field name %q", fld)
		}
		parts = append(parts, fmt.Sprintf(fieldMatch, fld))
		args = append(args, f.Pattern)
	}
	return "WHERE " + strings.Join(parts, " OR "), args, nil
}

func (r *Repo) Find(ctx context.Context, c domain.Collection, f domain.Filter, limit int) (out []domain.Document, err error) {
	defer observe(c, "find", time.Now(), &err)

	t, err := table(c)
	if err != nil {
		return nil, err
	}
	where, args, err := whereClause(f)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 1<<31 - 1
	}
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(findDocsSQL, t, where), append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c, err)
	}
	defer rows.Close()

	out = []domain.Document{}
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		d, err := decodeDoc(id, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) FindByID(ctx context.Context, c domain.Collection, id string) (d domain.Document, err error) {
	defer observe(c, "find_one", time.Now(), &err)

	if _, perr := primitive.ObjectIDFromHex(id); perr != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	t, err := table(c)
	if err != nil {
		return nil, err
	}
	var raw []byte
	var rowID string
	if err := r.db.QueryRowContext(ctx, fmt.Sprintf(findDocByIDSQL, t), strings.ToLower(id)).Scan(&rowID, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s %s: %w", c, id, err)
	}
	return decodeDoc(rowID, raw)
}

func (r *Repo) Count(ctx context.Context, c domain.Collection) (n int64, err error) {
	defer observe(c, "count", time.Now(), &err)

	t, err := table(c)
	if err != nil {
		return 0, err
	}
	if err := r.db.QueryRowContext(ctx, fmt.Sprintf(countDocsSQL, t)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", c, err)
	}
	return n, nil
}

func (r *Repo) InsertMany(ctx context.Context, c domain.Collection, docs []domain.Document) (ids []string, err error) {
	defer observe(c, "insert_many", time.Now(), &err)

	if len(docs) == 0 {
		return nil, nil
	}
	t, err := table(c)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(docs))
	args := make([]any, 0, len(docs)*2) // 2 params per row
	ids = make([]string, 0, len(docs))
	for _, d := range docs {
		id := primitive.NewObjectID().Hex()
		body := make(domain.Document, len(d))
		for k, v := range d {
			if k != domain.IDField {
				body[k] = v
			}
		}
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s document: %w", c, err)
		}
		values = append(values, "(?, ?)")
		args = append(args, id, string(b))
		ids = append(ids, id)
	}
	sqlStr := fmt.Sprintf(insertDocPrefix, t) + strings.Join(values, ",")
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("insert %s: %w", c, err)
	}
	return ids, nil
}

// Close releases the pool.
func (r *Repo) Close(ctx context.Context) error { return r.db.Close() }

func decodeDoc(id string, raw []byte) (domain.Document, error) {
	d := domain.Document{}
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	d[domain.IDField] = id
	return d, nil
}

func observe(c domain.Collection, op string, start time.Time, err *error) {
	observability.ObserveStore(driverName, c.String(), op, observability.Outcome(*err), time.Since(start))
}
