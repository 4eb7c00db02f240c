package record

import (
	"testing"

	"github.com/NVIDIA/slurmdocs/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReading_Coercion(t *testing.T) {
	tests := []struct {
		name      string
		in        Reading
		wantInt   int64
		intErr    bool
		wantFloat float64
		floatErr  bool
	}{
		{name: "integer", in: "64", wantInt: 64, wantFloat: 64},
		{name: "decimal", in: "3500.0000", intErr: true, wantFloat: 3500},
		{name: "range", in: "0-63", intErr: true, floatErr: true},
		{name: "vendor string", in: "GenuineIntel", intErr: true, floatErr: true},
		{name: "empty", in: "", intErr: true, floatErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.in.Int()
			if tt.intErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantInt, n)
			}

			f, err := tt.in.Float()
			if tt.floatErr {
				assert.Error(t, err)
				assert.False(t, tt.in.IsNumeric())
			} else {
				require.NoError(t, err)
				assert.InDelta(t, tt.wantFloat, f, 1e-9)
				assert.True(t, tt.in.IsNumeric())
			}
		})
	}
}

func TestReading_Bool(t *testing.T) {
	for _, in := range []Reading{"true", "1", "yes", "on"} {
		b, err := in.Bool()
		require.NoError(t, err)
		assert.True(t, b, in)
	}
	for _, in := range []Reading{"false", "0", "no", "off"} {
		b, err := in.Bool()
		require.NoError(t, err)
		assert.False(t, b, in)
	}
	_, err := Reading("maybe").Bool()
	assert.Error(t, err)
}

func TestStr_Trims(t *testing.T) {
	assert.Equal(t, Reading("x86_64"), Str("  x86_64 \t"))
	assert.Equal(t, "x86_64", Str("x86_64").Any())
}

func TestRecord_NumericAccessors(t *testing.T) {
	rec := Record{
		"CPU(s)":      "64",
		"CPU max MHz": "3500.0000",
		"Model name":  "Intel(R) Xeon(R) Gold 6338 CPU @ 2.00GHz",
	}

	n, err := rec.Int("CPU(s)")
	require.NoError(t, err)
	assert.Equal(t, int64(64), n)

	f, err := rec.Float("CPU max MHz")
	require.NoError(t, err)
	assert.InDelta(t, 3500.0, f, 1e-9)

	_, err = rec.Float("Model name")
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedArtifact))

	_, err = rec.Int("Socket(s)")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestRecord_RowsAndKeys(t *testing.T) {
	rec := Record{"b": "2", "a": "1"}

	assert.Equal(t, []string{"a", "b"}, rec.Keys())
	assert.Len(t, rec.Rows(), 1)

	v, ok := rec.Get("a")
	assert.True(t, ok)
	assert.Equal(t, Reading("1"), v)
}

func TestTable_AppendKeepsColumnOrder(t *testing.T) {
	tbl := NewTable()
	tbl.Append(Record{"NodeName": "n1", "CPUTot": "64"}, []string{"NodeName", "CPUTot"})
	tbl.Append(Record{"NodeName": "n2", "Gres": "gpu:4", "CPUTot": "32"}, []string{"NodeName", "Gres", "CPUTot"})
	tbl.Append(Record{"CPUTot": "16"}, nil)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"NodeName", "CPUTot", "Gres"}, tbl.Columns)
	assert.True(t, tbl.HasColumn("Gres"))
	assert.False(t, tbl.HasColumn("Arch"))

	values, present := tbl.Column("NodeName")
	assert.Equal(t, []Reading{"n1", "n2", ""}, values)
	assert.Equal(t, []bool{true, true, false}, present)

	row, ok := tbl.Lookup("NodeName", "n2")
	require.True(t, ok)
	assert.Equal(t, Reading("gpu:4"), row["Gres"])

	_, ok = tbl.Lookup("NodeName", "n9")
	assert.False(t, ok)

	var p Parsed = tbl
	assert.Len(t, p.Rows(), 3)
}

func TestTable_ZeroValueAppend(t *testing.T) {
	var tbl Table
	tbl.Append(Record{"NodeName": "n1"}, nil)
	tbl.AddColumn("NodeName")
	tbl.AddColumn("State")

	assert.Equal(t, []string{"NodeName", "State"}, tbl.Columns)
	assert.Equal(t, 1, tbl.Len())
}
