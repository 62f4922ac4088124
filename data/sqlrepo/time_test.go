package sqlrepo

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBTime_Value(t *testing.T) {
	tests := []struct {
		name    string
		in      time.Time
		want    any
		wantErr bool
	}{
		{name: "零值为 NULL", in: time.Time{}, want: nil},
		{name: "纪元", in: time.Unix(0, 0), want: "1970-01-01T00:00:00.000000000Z"},
		{name: "转换为 UTC", in: time.Date(2026, 3, 1, 9, 0, 0, 5, time.FixedZone("X", 3600)), want: "2026-03-01T08:00:00.000000005Z"},
		{name: "早于 1678 年", in: time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC), want: "1500-01-01T00:00:00.000000000Z"},
		{name: "超出 9999 年", in: time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dbTime(tt.in).Value()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDBTime_Scan(t *testing.T) {
	want := time.Date(1500, 1, 1, 0, 0, 0, 42, time.UTC)

	var v dbTime
	require.NoError(t, v.Scan("1500-01-01T00:00:00.000000042Z"))
	assert.True(t, want.Equal(v.Time()))

	require.NoError(t, v.Scan([]byte("1500-01-01T00:00:00.000000042Z")))
	assert.True(t, want.Equal(v.Time()))

	require.NoError(t, v.Scan(nil))
	assert.True(t, v.Time().IsZero())

	assert.Error(t, v.Scan(int64(1)))
	assert.Error(t, v.Scan("yesterday"))
}

// TestDBTime_TextOrder 测试文本字典序与时间先后一致
func TestDBTime_TextOrder(t *testing.T) {
	times := []time.Time{
		time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC),
		time.Unix(0, 0),
		time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1969, 12, 31, 23, 59, 59, 999999999, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 1, time.UTC),
	}
	texts := make([]string, len(times))
	for i, tm := range times {
		v, err := dbTime(tm).Value()
		require.NoError(t, err)
		texts[i] = v.(string)
	}

	sort.Strings(texts)
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	for i, tm := range times {
		v, _ := dbTime(tm).Value()
		assert.Equal(t, v, texts[i])
	}
}
