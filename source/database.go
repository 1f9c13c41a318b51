package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fieldprofiler/fieldprofiler/domain/models"
	"github.com/fieldprofiler/fieldprofiler/profiler"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// TableSource profiles a database table over the MySQL wire protocol.
// Rows are streamed, never loaded whole.
type TableSource struct {
	db     *gorm.DB
	table  string
	fields []models.FieldDescriptor
}

type columnInfo struct {
	Field string
	Type  string
}

// OpenTable connects with dsn and resolves the table's column types
// into field kinds.
func OpenTable(dsn, table string) (*TableSource, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	var columns []columnInfo
	tx := db.Raw("DESCRIBE " + table).Scan(&columns)
	if tx.Error != nil {
		return nil, fmt.Errorf("describing table %s: %w", table, tx.Error)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s has no columns", table)
	}

	fields := make([]models.FieldDescriptor, len(columns))
	for i, c := range columns {
		fields[i] = models.FieldDescriptor{Name: c.Field, Kind: kindForColumnType(c.Type)}
	}
	return &TableSource{db: db, table: table, fields: fields}, nil
}

// kindForColumnType maps a database column type to a field kind.
// Nullable wrappers and size suffixes are ignored.
func kindForColumnType(columnType string) models.FieldKind {
	t := strings.ToLower(columnType)
	t = strings.TrimPrefix(t, "nullable(")
	switch {
	case strings.HasPrefix(t, "tinyint"), strings.HasPrefix(t, "smallint"),
		strings.HasPrefix(t, "mediumint"), strings.HasPrefix(t, "bigint"),
		strings.HasPrefix(t, "int"), strings.HasPrefix(t, "uint"),
		strings.HasPrefix(t, "float"), strings.HasPrefix(t, "double"),
		strings.HasPrefix(t, "decimal"):
		return models.FieldNumeric
	case strings.HasPrefix(t, "date"), strings.HasPrefix(t, "timestamp"):
		return models.FieldTemporal
	case strings.HasPrefix(t, "char"), strings.HasPrefix(t, "varchar"),
		strings.HasPrefix(t, "text"), strings.HasPrefix(t, "string"),
		strings.HasPrefix(t, "enum"):
		return models.FieldText
	default:
		return models.FieldOther
	}
}

func (s *TableSource) Fields() ([]models.FieldDescriptor, error) { return s.fields, nil }

func (s *TableSource) TotalRows() (int64, error) {
	var count int64
	tx := s.db.Raw("SELECT COUNT(*) FROM " + s.table).Scan(&count)
	if tx.Error != nil {
		return 0, fmt.Errorf("counting rows of %s: %w", s.table, tx.Error)
	}
	return count, nil
}

func (s *TableSource) Rows(ctx context.Context) (profiler.RowIterator, error) {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	rows, err := s.db.WithContext(ctx).
		Raw("SELECT " + strings.Join(names, ", ") + " FROM " + s.table).
		Rows()
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.table, err)
	}
	return &tableIterator{rows: rows, fields: s.fields}, nil
}

type tableIterator struct {
	rows   *sql.Rows
	fields []models.FieldDescriptor
	pos    int64
}

func (it *tableIterator) Next() (models.Row, bool, error) {
	if !it.rows.Next() {
		return models.Row{}, false, it.rows.Err()
	}
	cells := make([]sql.NullString, len(it.fields))
	dest := make([]any, len(cells))
	for i := range cells {
		dest[i] = &cells[i]
	}
	if err := it.rows.Scan(dest...); err != nil {
		return models.Row{}, false, err
	}

	it.pos++
	values := make([]models.RawValue, len(it.fields))
	for i, f := range it.fields {
		if !cells[i].Valid {
			values[i] = models.Null()
			continue
		}
		values[i] = convertCell(f.Kind, cells[i].String)
	}
	return models.Row{ID: it.pos, Values: values}, true, nil
}

func (it *tableIterator) Close() error { return it.rows.Close() }
