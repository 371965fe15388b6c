// Package source loads expansion inputs into gota data frames from CSV files,
// Excel workbooks and HTTP endpoints.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/internal/options"
)

// DefaultTimeout bounds a Fetch when the loader has no client of its own.
const DefaultTimeout = 30 * time.Second

// Loader reads data frames from local files or URLs.
type Loader struct {
	client *http.Client
	sheet  string
	types  map[string]series.Type
}

// Option configures a Loader.
type Option = options.Option[*Loader]

// WithHTTPClient sets the client used for http(s) locations.
func WithHTTPClient(client *http.Client) Option {
	return options.NoError(func(l *Loader) {
		if client != nil {
			l.client = client
		}
	})
}

// WithTimeout replaces the client with one bounded by d.
func WithTimeout(d time.Duration) Option {
	return options.New(func(l *Loader) error {
		if d <= 0 {
			return fmt.Errorf("%w: timeout %s", errs.ErrInvalidArgument, d)
		}
		l.client = &http.Client{Timeout: d}

		return nil
	})
}

// WithSheet selects the workbook sheet for .xlsx locations. The first sheet is
// used by default.
func WithSheet(sheet string) Option {
	return options.NoError(func(l *Loader) {
		l.sheet = sheet
	})
}

// WithStringColumns keeps the named columns as text instead of letting gota
// detect their type, so ids like "007" or "1.50" survive unchanged.
func WithStringColumns(names ...string) Option {
	return options.NoError(func(l *Loader) {
		for _, name := range names {
			l.types[name] = series.String
		}
	})
}

// WithColumnTypes fixes the gota type of the named columns.
func WithColumnTypes(types map[string]series.Type) Option {
	return options.NoError(func(l *Loader) {
		for name, t := range types {
			l.types[name] = t
		}
	})
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) (*Loader, error) {
	l := &Loader{
		client: &http.Client{Timeout: DefaultTimeout},
		types:  make(map[string]series.Type),
	}
	if err := options.Apply(l, opts...); err != nil {
		return nil, err
	}

	return l, nil
}

// Load reads location and dispatches on its form:
//   - http:// and https:// URLs are fetched as CSV
//   - paths ending in .xlsx are read as Excel workbooks
//   - anything else is read as a CSV file
func (l *Loader) Load(ctx context.Context, location string) (dataframe.DataFrame, error) {
	var loadOpts []dataframe.LoadOption
	if len(l.types) > 0 {
		loadOpts = append(loadOpts, dataframe.WithTypes(l.types))
	}

	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return Fetch(ctx, l.client, location, loadOpts...)
	case strings.EqualFold(filepath.Ext(location), ".xlsx"):
		return ReadXLSX(location, l.sheet, loadOpts...)
	default:
		return ReadCSVFile(location, loadOpts...)
	}
}

// Load reads location with a default loader. See Loader.Load.
func Load(ctx context.Context, location string, opts ...Option) (dataframe.DataFrame, error) {
	l, err := NewLoader(opts...)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	return l.Load(ctx, location)
}

// ReadCSV parses CSV with a header row. Column types are detected by gota
// unless opts fix them, e.g. with dataframe.WithTypes.
func ReadCSV(r io.Reader, opts ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r, opts...)
	if df.Err != nil {
		return df, fmt.Errorf("failed to read csv: %w", df.Err)
	}
	if df.Ncol() == 0 {
		return df, errs.ErrEmptySource
	}

	return df, nil
}

// ReadCSVFile opens path and parses it with ReadCSV.
func ReadCSVFile(path string, opts ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, opts...)
}

// Fetch downloads url with client and parses the body as CSV. A nil client
// uses one bounded by DefaultTimeout.
func Fetch(ctx context.Context, client *http.Client, url string, opts ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := client.Do(req)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s from %s", errs.ErrHTTPStatus, resp.Status, url)
	}

	return ReadCSV(resp.Body, opts...)
}
