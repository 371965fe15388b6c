package frame

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/arloliu/tossframe/errs"
)

// Column names used by the data-frame conversions.
const (
	ColID     = "id"
	ColToss   = "toss"
	ColTrials = "trials"
	ColHeads  = "heads"
	ColRate   = "rate"
)

// Inputs are the three aligned expansion inputs, typically read from a data frame.
type Inputs struct {
	IDs    []string
	Trials []int
	Heads  []int
}

// Len returns the number of input rows.
func (in Inputs) Len() int {
	return len(in.IDs)
}

// Expand runs Expand over the inputs.
func (in Inputs) Expand() (*Table[string], error) {
	return Expand(in.IDs, in.Trials, in.Heads)
}

// ToDataFrame converts the table into a gota data frame with columns "id" and
// "toss". Integer and string ids keep their type; other id types are rendered
// with fmt.
func ToDataFrame[K comparable](t *Table[K]) dataframe.DataFrame {
	return dataframe.New(
		idSeries(t.ID, ColID),
		series.New(t.Toss, series.Bool, ColToss),
	)
}

// SummaryDataFrame converts summaries into a gota data frame with columns
// "id", "trials", "heads" and "rate".
func SummaryDataFrame[K comparable](summaries []Summary[K]) dataframe.DataFrame {
	ids := make([]K, len(summaries))
	trials := make([]int, len(summaries))
	heads := make([]int, len(summaries))
	rates := make([]float64, len(summaries))
	for i, s := range summaries {
		ids[i] = s.ID
		trials[i] = s.Trials
		heads[i] = s.Heads
		rates[i] = s.Rate()
	}

	return dataframe.New(
		idSeries(ids, ColID),
		series.New(trials, series.Int, ColTrials),
		series.New(heads, series.Int, ColHeads),
		series.New(rates, series.Float, ColRate),
	)
}

func idSeries[K comparable](ids []K, name string) series.Series {
	switch v := any(ids).(type) {
	case []string:
		return series.New(v, series.String, name)
	case []int:
		return series.New(v, series.Int, name)
	}

	records := make([]string, len(ids))
	for i, id := range ids {
		records[i] = fmt.Sprint(id)
	}

	return series.New(records, series.String, name)
}

// InputsFromDataFrame reads the expansion inputs out of df.
//
// The id column is read through its records. Load it as text (for example with
// dataframe.WithTypes) to keep ids such as "007" verbatim; an id column gota
// parsed as float is rejected since its records no longer match the input.
// Every trials and heads cell must hold an integer: int cells, integral float
// cells and decimal text are accepted, anything else fails with
// errs.ErrInvalidArgument.
//
// The counts are not range checked; Expand does that.
func InputsFromDataFrame(df dataframe.DataFrame, idCol, trialsCol, headsCol string) (Inputs, error) {
	if df.Err != nil {
		return Inputs{}, fmt.Errorf("data frame: %w", df.Err)
	}

	ids, err := column(df, idCol)
	if err != nil {
		return Inputs{}, err
	}
	if ids.Type() == series.Float {
		return Inputs{}, fmt.Errorf("%w: id column %q was parsed as float, load it as text",
			errs.ErrInvalidArgument, idCol)
	}

	trials, err := intColumn(df, trialsCol)
	if err != nil {
		return Inputs{}, err
	}

	heads, err := intColumn(df, headsCol)
	if err != nil {
		return Inputs{}, err
	}

	return Inputs{IDs: ids.Records(), Trials: trials, Heads: heads}, nil
}

func column(df dataframe.DataFrame, name string) (series.Series, error) {
	s := df.Col(name)
	if s.Err != nil {
		return s, fmt.Errorf("%w: column %q: %w", errs.ErrInvalidArgument, name, s.Err)
	}

	return s, nil
}

func intColumn(df dataframe.DataFrame, name string) ([]int, error) {
	s, err := column(df, name)
	if err != nil {
		return nil, err
	}

	values := make([]int, s.Len())
	for i := range values {
		v, err := intElem(s.Elem(i))
		if err != nil {
			return nil, fmt.Errorf("%w: column %q row %d: %w", errs.ErrInvalidArgument, name, i, err)
		}
		values[i] = v
	}

	return values, nil
}

// intElem converts one cell without truncating fractions.
func intElem(e series.Element) (int, error) {
	if e.IsNA() {
		return 0, errors.New("missing value")
	}

	switch e.Type() {
	case series.Int:
		return e.Int()
	case series.Float:
		f := e.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%v is not an integer", f)
		}

		return int(f), nil
	case series.String:
		return strconv.Atoi(strings.TrimSpace(e.String()))
	default:
		return 0, fmt.Errorf("%s value %q is not an integer", e.Type(), e.String())
	}
}
