package plugin

import (
	"strconv"
	"strings"
)

// Zone kinds mark the clickable regions of a rendered chart.
const (
	ZoneTitle  = "title"
	ZoneLegend = "legend"
	ZoneAxis   = "axis"
	ZoneArea   = "area"
)

// ZoneID names a marked region as "chart/kind/index".
func ZoneID(chartID, kind string, index int) string {
	return chartID + "/" + kind + "/" + strconv.Itoa(index)
}

// ParseZoneID splits a zone id built by ZoneID.
func ParseZoneID(id string) (chartID, kind string, index int, ok bool) {
	last := strings.LastIndex(id, "/")
	if last < 0 {
		return "", "", 0, false
	}
	index, err := strconv.Atoi(id[last+1:])
	if err != nil {
		return "", "", 0, false
	}
	rest := id[:last]
	mid := strings.LastIndex(rest, "/")
	if mid < 0 {
		return "", "", 0, false
	}
	return rest[:mid], rest[mid+1:], index, true
}
