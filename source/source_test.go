package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/frame"
)

const inputsCSV = "id,trials,heads\na,3,1\nb,2,2\nc,0,0\n"

func requireInputs(t *testing.T, df dataframe.DataFrame) {
	t.Helper()

	in, err := frame.InputsFromDataFrame(df, "id", "trials", "heads")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, in.IDs)
	require.Equal(t, []int{3, 2, 0}, in.Trials)
	require.Equal(t, []int{1, 2, 0}, in.Heads)
}

func TestReadCSV(t *testing.T) {
	df, err := ReadCSV(strings.NewReader(inputsCSV))
	require.NoError(t, err)
	require.Equal(t, 3, df.Nrow())
	requireInputs(t, df)
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(inputsCSV), 0o600))

	df, err := ReadCSVFile(path)
	require.NoError(t, err)
	requireInputs(t, df)

	_, err = ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, f.SaveAs(path))

	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeWorkbook(t, "inputs", [][]any{
		{"id", "trials", "heads"},
		{"a", 3, 1},
		{"b", 2, 2},
		{"c", 0, 0},
	})

	df, err := ReadXLSX(path, "")
	require.NoError(t, err)
	requireInputs(t, df)

	df, err = ReadXLSX(path, "inputs")
	require.NoError(t, err)
	requireInputs(t, df)

	_, err = ReadXLSX(path, "nope")
	require.Error(t, err)
}

func TestReadXLSX_EmptySheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", nil)

	_, err := ReadXLSX(path, "")
	require.ErrorIs(t, err, errs.ErrEmptySource)
}

func TestReadXLSX_ShortRowsPadded(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"id", "note"},
		{"a"},
		{"b", "x"},
	})

	df, err := ReadXLSX(path, "")
	require.NoError(t, err)
	require.Equal(t, 2, df.Nrow())
	require.Equal(t, []string{"id", "note"}, df.Names())
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	tbl, err := frame.Expand([]string{"a", "b"}, []int{2, 1}, []int{1, 0})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, "tosses", frame.ToDataFrame(tbl)))

	df, err := ReadXLSX(path, "tosses")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "toss"}, df.Names())
	require.Equal(t, []string{"a", "a", "b"}, df.Col("id").Records())
	require.Equal(t, series.Bool, df.Col("toss").Type())
	require.Equal(t, []string{"true", "false", "false"}, df.Col("toss").Records())
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/inputs.csv":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte(inputsCSV))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	df, err := Fetch(context.Background(), srv.Client(), srv.URL+"/inputs.csv")
	require.NoError(t, err)
	requireInputs(t, df)

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/missing.csv")
	require.ErrorIs(t, err, errs.ErrHTTPStatus)
}

func TestFetch_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(inputsCSV))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch(ctx, nil, srv.URL)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Dispatch(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(inputsCSV), 0o600))

	xlsxPath := writeWorkbook(t, "Sheet1", [][]any{
		{"id", "trials", "heads"},
		{"a", 3, 1},
		{"b", 2, 2},
		{"c", 0, 0},
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(inputsCSV))
	}))
	defer srv.Close()

	ctx := context.Background()
	for _, loc := range []string{csvPath, xlsxPath, srv.URL + "/in.csv"} {
		df, err := Load(ctx, loc, WithHTTPClient(srv.Client()))
		require.NoError(t, err, loc)
		requireInputs(t, df)
	}
}

func TestLoad_NumericLookingIDs(t *testing.T) {
	const idsCSV = "id,trials,heads\n007,3,1\n1.50,2,2\n"
	const fractionalCSV = "id,trials,heads\n007,2.5,1\n"

	dir := t.TempDir()
	writeCSV := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		return path
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "fractional.csv") {
			_, _ = w.Write([]byte(fractionalCSV))
			return
		}
		_, _ = w.Write([]byte(idsCSV))
	}))
	defer srv.Close()

	tests := []struct {
		name     string
		location string
		err      error
	}{
		{name: "csv", location: writeCSV("ids.csv", idsCSV)},
		{name: "xlsx", location: writeWorkbook(t, "Sheet1", [][]any{
			{"id", "trials", "heads"},
			{"007", 3, 1},
			{"1.50", 2, 2},
		})},
		{name: "url", location: srv.URL + "/ids.csv"},
		{name: "csv fractional trials", location: writeCSV("fractional.csv", fractionalCSV), err: errs.ErrInvalidArgument},
		{name: "url fractional trials", location: srv.URL + "/fractional.csv", err: errs.ErrInvalidArgument},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df, err := Load(ctx, tt.location, WithHTTPClient(srv.Client()), WithStringColumns("id"))
			require.NoError(t, err)
			require.Equal(t, series.String, df.Col("id").Type())

			in, err := frame.InputsFromDataFrame(df, "id", "trials", "heads")
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, []string{"007", "1.50"}, in.IDs)
			require.Equal(t, []int{3, 2}, in.Trials)
			require.Equal(t, []int{1, 2}, in.Heads)
		})
	}
}

func TestLoad_DetectedIDTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,trials,heads\n007,1,0\n"), 0o600))

	df, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []string{"7"}, df.Col("id").Records())

	df, err = Load(context.Background(), path, WithColumnTypes(map[string]series.Type{"id": series.String}))
	require.NoError(t, err)
	require.Equal(t, []string{"007"}, df.Col("id").Records())
}

func TestNewLoader_Options(t *testing.T) {
	l, err := NewLoader(WithTimeout(time.Second), WithSheet("x"), WithStringColumns("id", "code"))
	require.NoError(t, err)
	require.Equal(t, time.Second, l.client.Timeout)
	require.Equal(t, "x", l.sheet)
	require.Equal(t, map[string]series.Type{"id": series.String, "code": series.String}, l.types)

	_, err = NewLoader(WithTimeout(0))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	l, err = NewLoader(WithHTTPClient(nil))
	require.NoError(t, err)
	require.NotNil(t, l.client)
}
