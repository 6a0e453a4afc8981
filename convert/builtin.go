package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Category selects groups of built-in conversions.
type Category int

const (
	CategorySafeNumber  Category = 1 << iota // int, uint, float widening without precision loss
	CategoryTextNumber                       // int, uint, float <-> string: textual number representation
	CategoryNumericBool                      // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                      // string <-> bool: yes, no, on, off, true, false
	CategoryDatetime                         // string(RFC3339Nano) <-> time.Time
	CategoryTimestamp                        // int64(Unix seconds) <-> time.Time
	CategoryDuration                         // string(2h45m) <-> time.Duration
	CategorySeconds                          // float64(seconds) <-> time.Duration

	CategoryAll  = (1 << iota) - 1 // all categories combined
	CategoryNone = 0               // no categories selected
)

// Type names used by the built-in conversions besides Go's predeclared ones.
const (
	TimeType     = "time.Time"
	DurationType = "time.Duration"
)

type builtin struct {
	category Category
	from, to string
	fn       any
}

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func widen[From, To number](in From) To {
	return To(in)
}

func safe[From, To number](from, to string) builtin {
	return builtin{category: CategorySafeNumber, from: from, to: to, fn: widen[From, To]}
}

var builtins = []builtin{
	safe[int, int64]("int", "int64"),
	safe[int8, int]("int8", "int"),
	safe[int8, int16]("int8", "int16"),
	safe[int8, int32]("int8", "int32"),
	safe[int8, int64]("int8", "int64"),
	safe[int8, float32]("int8", "float32"),
	safe[int8, float64]("int8", "float64"),
	safe[int16, int]("int16", "int"),
	safe[int16, int32]("int16", "int32"),
	safe[int16, int64]("int16", "int64"),
	safe[int16, float32]("int16", "float32"),
	safe[int16, float64]("int16", "float64"),
	safe[int32, int]("int32", "int"),
	safe[int32, int64]("int32", "int64"),
	safe[int32, float64]("int32", "float64"),
	safe[uint, uint64]("uint", "uint64"),
	safe[uint8, uint]("uint8", "uint"),
	safe[uint8, uint16]("uint8", "uint16"),
	safe[uint8, uint32]("uint8", "uint32"),
	safe[uint8, uint64]("uint8", "uint64"),
	safe[uint8, int]("uint8", "int"),
	safe[uint8, int32]("uint8", "int32"),
	safe[uint8, int64]("uint8", "int64"),
	safe[uint8, float32]("uint8", "float32"),
	safe[uint8, float64]("uint8", "float64"),
	safe[uint16, uint]("uint16", "uint"),
	safe[uint16, uint32]("uint16", "uint32"),
	safe[uint16, uint64]("uint16", "uint64"),
	safe[uint16, int]("uint16", "int"),
	safe[uint16, int32]("uint16", "int32"),
	safe[uint16, int64]("uint16", "int64"),
	safe[uint16, float32]("uint16", "float32"),
	safe[uint16, float64]("uint16", "float64"),
	safe[uint32, uint64]("uint32", "uint64"),
	safe[uint32, int64]("uint32", "int64"),
	safe[uint32, float64]("uint32", "float64"),
	safe[float32, float64]("float32", "float64"),

	{CategoryTextNumber, "string", "int", strconv.Atoi},
	{CategoryTextNumber, "int", "string", strconv.Itoa},
	{CategoryTextNumber, "string", "int64", parseInt64},
	{CategoryTextNumber, "int64", "string", formatInt64},
	{CategoryTextNumber, "string", "uint64", parseUint64},
	{CategoryTextNumber, "uint64", "string", formatUint64},
	{CategoryTextNumber, "string", "float64", parseFloat64},
	{CategoryTextNumber, "float64", "string", formatFloat64},

	{CategoryNumericBool, "int", "bool", numericBool},
	{CategoryNumericBool, "bool", "int", boolNumeric},

	{CategoryTextualBool, "string", "bool", textualBool},
	{CategoryTextualBool, "bool", "string", strconv.FormatBool},

	{CategoryDatetime, "string", TimeType, parseDatetime},
	{CategoryDatetime, TimeType, "string", formatDatetime},

	{CategoryTimestamp, "int64", TimeType, unixTime},
	{CategoryTimestamp, TimeType, "int64", time.Time.Unix},

	{CategoryDuration, "string", DurationType, time.ParseDuration},
	{CategoryDuration, DurationType, "string", time.Duration.String},

	{CategorySeconds, "float64", DurationType, secondsDuration},
	{CategorySeconds, DurationType, "float64", time.Duration.Seconds},
}

// RegisterBuiltins registers every built-in conversion of the selected
// categories. Pairs that are already registered are left alone.
func (r *Registry) RegisterBuiltins(categories Category) error {
	var errs []error

	for _, b := range builtins {
		if categories&b.category == 0 || r.Has(b.from, b.to) {
			continue
		}

		if err := r.Register(b.from, b.to, b.fn); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func formatInt64(v int64) string { return strconv.FormatInt(v, 10) }

func parseUint64(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }

func formatUint64(v uint64) string { return strconv.FormatUint(v, 10) }

func parseFloat64(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

func formatFloat64(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func numericBool(v int) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("numeric bool must be 0 or 1, got %d", v)
	}
}

func boolNumeric(v bool) int {
	if v {
		return 1
	}

	return 0
}

func textualBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on", "true":
		return true, nil
	case "no", "off", "false":
		return false, nil
	default:
		return false, fmt.Errorf("textual bool must be yes, no, on, off, true or false, got %q", s)
	}
}

func parseDatetime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func formatDatetime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0)
}

func secondsDuration(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
