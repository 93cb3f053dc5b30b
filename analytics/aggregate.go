package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/senan-sh/ayna-analytics/checkin"
	"github.com/senan-sh/ayna-analytics/utils"
)

const (
	topRoutesLimit     = 12
	operatorSplitLimit = 6
)

// ChartItem is one labeled value of a chart series.
type ChartItem struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Summary carries the four derived chart series.
type Summary struct {
	Hourly        []ChartItem `json:"hourly"`
	TopRoutes     []ChartItem `json:"topRoutes"`
	OperatorSplit []ChartItem `json:"operatorSplit"`
	PaymentMix    []ChartItem `json:"paymentMix"`
}

// Summarize derives the chart series from a normalized batch. Rows whose
// count cell coerces to <= 0 are excluded from the hourly, route and operator
// groupings; the payment totals accumulate over every row regardless.
func Summarize(ds *checkin.Dataset) Summary {
	hourField := matchField(ds.Fields, hourFieldRe)
	countField := matchField(ds.Fields, countFieldRe)
	routeField := matchField(ds.Fields, routeFieldRe)
	operatorField := matchField(ds.Fields, operatorFieldRe)
	smartField := matchField(ds.Fields, smartCardFieldRe)
	qrFieldName := qrField(ds.Fields)

	hourly := map[string]float64{}
	routes := map[string]float64{}
	operators := map[string]float64{}
	var smartTotal, qrTotal float64

	for _, row := range ds.Rows {
		if smartField != "" {
			smartTotal += utils.AsNumber(row.Cells[smartField])
		}
		if qrFieldName != "" {
			qrTotal += utils.AsNumber(row.Cells[qrFieldName])
		}

		if countField == "" {
			continue
		}
		count := utils.AsNumber(row.Cells[countField])
		if count <= 0 {
			continue
		}
		if hourField != "" {
			hourly[hourLabel(row.Cells[hourField])] += count
		}
		if routeField != "" {
			if label := cellLabel(row.Cells[routeField]); label != "" {
				routes[label] += count
			}
		}
		if operatorField != "" {
			if label := cellLabel(row.Cells[operatorField]); label != "" {
				operators[label] += count
			}
		}
	}

	s := Summary{
		Hourly:        sortedByLabel(hourly),
		TopRoutes:     topN(routes, topRoutesLimit),
		OperatorSplit: topN(operators, operatorSplitLimit),
	}
	if smartTotal > 0 {
		s.PaymentMix = append(s.PaymentMix, ChartItem{Label: "SmartCard", Value: smartTotal})
	}
	if qrTotal > 0 {
		s.PaymentMix = append(s.PaymentMix, ChartItem{Label: "QR", Value: qrTotal})
	}
	return s
}

// hourLabel renders an hour cell as a zero-padded "HH:00" label, or "Unknown"
// when the cell is blank.
func hourLabel(v any) string {
	s := cellLabel(v)
	if s == "" {
		return "Unknown"
	}
	if len(s) < 2 {
		s = "0" + s
	}
	return s + ":00"
}

func cellLabel(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	default:
		return ""
	}
}

func sortedByLabel(m map[string]float64) []ChartItem {
	items := toItems(m)
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

// topN sorts descending by value (label ascending on ties) and truncates.
func topN(m map[string]float64, n int) []ChartItem {
	items := toItems(m)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Value != items[j].Value {
			return items[i].Value > items[j].Value
		}
		return items[i].Label < items[j].Label
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func toItems(m map[string]float64) []ChartItem {
	items := make([]ChartItem, 0, len(m))
	for label, value := range m {
		items = append(items, ChartItem{Label: label, Value: value})
	}
	return items
}
