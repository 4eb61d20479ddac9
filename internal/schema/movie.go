// Package schema describes the movie record: its column names, logical
// types, and the derived decade.
package schema

// Column names of the cleaned movie table.
const (
	Title       = "title"
	Genre       = "genre"
	ReleaseYear = "release_year"
	Rating      = "rating"
	Votes       = "votes"
	Revenue     = "revenue"
	Decade      = "decade"
)

// Logical types understood by the coerce step and the DDL mappers.
const (
	TypeText  = "text"
	TypeInt   = "int"
	TypeFloat = "float"
)

// Required lists the columns every input file must provide, in table order.
var Required = []string{Title, Genre, ReleaseYear, Rating, Votes, Revenue}

// NumericTypes maps each numeric input column to its logical type.
var NumericTypes = map[string]string{
	ReleaseYear: TypeInt,
	Rating:      TypeFloat,
	Votes:       TypeInt,
	Revenue:     TypeFloat,
}

// Field is one typed column of the movie table.
type Field struct {
	Name string
	Type string
}

// Fields lists every column of the cleaned table, derived column last.
var Fields = []Field{
	{Title, TypeText},
	{Genre, TypeText},
	{ReleaseYear, TypeInt},
	{Rating, TypeFloat},
	{Votes, TypeInt},
	{Revenue, TypeFloat},
	{Decade, TypeInt},
}

// TypeOf returns the logical type of a known column and TypeText for any
// other column.
func TypeOf(name string) string {
	for _, f := range Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return TypeText
}

// IndexedColumns are the lookup columns that get a non-unique index.
var IndexedColumns = []string{Title, Genre}

// DecadeOf floors year to the nearest multiple of ten, rounding toward
// negative infinity.
func DecadeOf(year int64) int64 {
	q := year / 10
	if year%10 != 0 && year < 0 {
		q--
	}
	return q * 10
}
