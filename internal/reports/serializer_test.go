package reports

import (
	"strings"
	"testing"

	"log-analyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRows_Empty(t *testing.T) {
	t.Parallel()

	for _, rows := range [][]models.ReportRow{nil, {}} {
		data, err := MarshalRows(rows)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	}
}

func TestMarshalRows_FieldNamesAndOrder(t *testing.T) {
	t.Parallel()

	rows := []models.ReportRow{
		{URL: "/b", Count: 1, CountPerc: 0.25, TimeSum: 1, TimePerc: 0.5, TimeAvg: 1, TimeMax: 1, TimeMed: 1},
		{URL: "/a", Count: 3, CountPerc: 0.75, TimeSum: 1, TimePerc: 0.5, TimeAvg: 0.5, TimeMax: 0.75, TimeMed: 0.25},
	}

	data, err := MarshalRows(rows)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"url":"/b","count":1,"count_perc":0.25,"time_sum":1,"time_perc":0.5,"time_avg":1,"time_max":1,"time_med":1},
		{"url":"/a","count":3,"count_perc":0.75,"time_sum":1,"time_perc":0.5,"time_avg":0.5,"time_max":0.75,"time_med":0.25}
	]`, string(data))
	assert.Less(t, strings.Index(string(data), `"/b"`), strings.Index(string(data), `"/a"`))
}

func TestMarshalRows_EscapesMarkup(t *testing.T) {
	t.Parallel()

	data, err := MarshalRows([]models.ReportRow{{URL: "/x?</script><b>", Count: 1}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "</script>")
}
