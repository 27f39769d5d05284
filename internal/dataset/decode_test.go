package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_HeaderAndRows(t *testing.T) {
	input := "ISIN No,Parent Fund,Sub Fund Name\n" +
		"AB12CD3FG456,Acme Umbrella,Acme Growth\n" +
		"ZZ00ZZ0ZZ000,Zeta Trust,Zeta Income\n"

	ds, err := Decode(strings.NewReader(input), DecodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"ISIN No", "Parent Fund", "Sub Fund Name"}, ds.Columns())
	require.Equal(t, 2, ds.Len())

	v, ok := recordAt(t, ds, 0).Get("Sub Fund Name")
	assert.True(t, ok)
	assert.Equal(t, "Acme Growth", v)

	v, _ = recordAt(t, ds, 1).Get("ISIN No")
	assert.Equal(t, "ZZ00ZZ0ZZ000", v)
}

func TestDecode_QuotedFields(t *testing.T) {
	input := "ISIN No,Parent Fund,Sub Fund Name\n" +
		"AB12CD3FG456,\"Acme, Umbrella \"\"Plc\"\"\",\"Acme\nGrowth\"\n"

	ds, err := Decode(strings.NewReader(input), DecodeOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())

	parent, _ := recordAt(t, ds, 0).Get("Parent Fund")
	assert.Equal(t, `Acme, Umbrella "Plc"`, parent)

	sub, _ := recordAt(t, ds, 0).Get("Sub Fund Name")
	assert.Equal(t, "Acme\nGrowth", sub)
}

func TestDecode_RaggedRowsPassThrough(t *testing.T) {
	input := "ISIN No,Parent Fund,Sub Fund Name\n" +
		"SHORT000001,Only Parent\n" +
		"LONG0000001,P,S,extra1,extra2\n"

	ds, err := Decode(strings.NewReader(input), DecodeOptions{})
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	short := recordAt(t, ds, 0)
	_, ok := short.Get("Sub Fund Name")
	assert.False(t, ok, "short row must not be padded")
	assert.Equal(t, 2, short.Len())

	long := recordAt(t, ds, 1)
	assert.Equal(t, []string{"LONG0000001", "P", "S", "extra1", "extra2"}, long.Raw())
	sub, _ := long.Get("Sub Fund Name")
	assert.Equal(t, "S", sub)
}

func TestDecode_EmptyInput(t *testing.T) {
	ds, err := Decode(strings.NewReader(""), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Columns())
}

func TestDecode_HeaderOnly(t *testing.T) {
	ds, err := Decode(strings.NewReader("ISIN No,Parent Fund\n"), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.True(t, ds.HasColumn("ISIN No"))
}

func TestDecode_StripsBOM(t *testing.T) {
	input := "\ufeffISIN No,Parent Fund\nAB12CD3FG456,Acme\n"

	ds, err := Decode(strings.NewReader(input), DecodeOptions{})
	require.NoError(t, err)
	assert.True(t, ds.HasColumn("ISIN No"))

	rec, ok := ds.Find("ISIN No", "AB12CD3FG456")
	require.True(t, ok)
	parent, _ := rec.Get("Parent Fund")
	assert.Equal(t, "Acme", parent)
}

func TestDecode_DuplicateHeaders(t *testing.T) {
	input := "Name,Name,Other,Name\na,b,c,d\n"

	ds, err := Decode(strings.NewReader(input), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Name_1", "Other", "Name_2"}, ds.Columns())

	second, _ := recordAt(t, ds, 0).Get("Name_1")
	assert.Equal(t, "b", second)
}

func TestDecode_CustomDelimiter(t *testing.T) {
	input := "ISIN No;Parent Fund\nAB12CD3FG456;Acme, Ltd\n"

	ds, err := Decode(strings.NewReader(input), DecodeOptions{Comma: ';'})
	require.NoError(t, err)

	parent, _ := recordAt(t, ds, 0).Get("Parent Fund")
	assert.Equal(t, "Acme, Ltd", parent)
}

func TestDecode_MalformedQuotes(t *testing.T) {
	input := "ISIN No,Parent Fund\nAB12CD3FG456,Acme \"Umbrella\n"

	_, err := Decode(strings.NewReader(input), DecodeOptions{})
	assert.Error(t, err)

	ds, err := Decode(strings.NewReader(input), DecodeOptions{LazyQuotes: true})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

func TestNormalizeHeader_SuffixCollision(t *testing.T) {
	got := normalizeHeader([]string{"a", "a_1", "a"})
	assert.Equal(t, []string{"a", "a_1", "a_2"}, got)
}

func recordAt(t *testing.T, ds *Dataset, i int) Record {
	t.Helper()
	r, ok := ds.At(i)
	require.True(t, ok, "record %d out of range (len %d)", i, ds.Len())
	return r
}
