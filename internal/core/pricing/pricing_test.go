package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var excursionTable = Table{
	{Bucket: "1", Price: 100},
	{Bucket: "2", Price: 80},
	{Bucket: "3", Price: 70},
	{Bucket: "4", Price: 60},
	{Bucket: "5+", Price: 55},
}

var multiDayTable = Table{
	{Bucket: "1", Price: 450},
	{Bucket: "2-3", Price: 380},
	{Bucket: "4-5", Price: 320},
	{Bucket: "6+", Price: 290},
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		pax   int
		want  int64
	}{
		{"exact single", excursionTable, 1, 100},
		{"exact four", excursionTable, 4, 60},
		{"open bucket at boundary", excursionTable, 5, 55},
		{"open bucket large group", excursionTable, 100, 55},
		{"range two", multiDayTable, 2, 380},
		{"range three", multiDayTable, 3, 380},
		{"range four", multiDayTable, 4, 320},
		{"range five", multiDayTable, 5, 320},
		{"six plus", multiDayTable, 6, 290},
		{"six plus large", multiDayTable, 40, 290},
		{"falls back to single bucket", Table{{"1", 90}, {"10+", 40}}, 3, 90},
		{"falls back to first bucket", Table{{"2", 75}, {"8+", 50}}, 3, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.table, tt.pax)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOpenBucketBeatsRange(t *testing.T) {
	// both conventions in one table: "5+" is checked before "4-5"
	mixed := Table{{"1", 100}, {"4-5", 70}, {"5+", 60}}

	got, err := Resolve(mixed, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got)

	got, err = Resolve(mixed, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(70), got)
}

func TestResolveIsDeterministic(t *testing.T) {
	for pax := 1; pax <= 60; pax++ {
		first, err := Resolve(excursionTable, pax)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := Resolve(excursionTable, pax)
			require.NoError(t, err)
			assert.Equal(t, first, again, "pax %d", pax)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	_, err := Resolve(nil, 2)
	assert.ErrorIs(t, err, ErrNoBucket)

	_, err = Resolve(excursionTable, 0)
	assert.ErrorIs(t, err, ErrNoBucket)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, excursionTable.Validate())
	assert.NoError(t, multiDayTable.Validate())

	assert.ErrorIs(t, Table{}.Validate(), ErrNoBucket)
	assert.ErrorIs(t, Table{{"1", 100}, {"2", 90}}.Validate(), ErrNoCatchAll)
	assert.ErrorIs(t, Table{{"one", 100}, {"5+", 50}}.Validate(), ErrInvalidBucket)
	assert.ErrorIs(t, Table{{"3-2", 100}, {"5+", 50}}.Validate(), ErrInvalidBucket)
	assert.ErrorIs(t, Table{{"1", 100}, {"1", 90}, {"5+", 50}}.Validate(), ErrInvalidBucket)
	assert.ErrorIs(t, Table{{"1", 0}, {"5+", 50}}.Validate(), ErrInvalidBucket)
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, int64(55), excursionTable.Min())
	assert.Equal(t, int64(100), excursionTable.Max())
	assert.Equal(t, int64(0), Table{}.Min())
}

func TestTableJSONKeepsOrder(t *testing.T) {
	raw := `{"1":450,"2-3":380,"4-5":320,"6+":290}`

	var table Table
	require.NoError(t, json.Unmarshal([]byte(raw), &table))
	assert.Equal(t, multiDayTable, table)

	out, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
	assert.Equal(t, raw, string(out))
}

func TestTableJSONRejectsFractions(t *testing.T) {
	var table Table
	err := json.Unmarshal([]byte(`{"1":99.5}`), &table)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`[1,2]`), &table)
	assert.Error(t, err)
}
