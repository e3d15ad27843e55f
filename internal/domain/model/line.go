package model

// Line is a bus route.
type Line struct {
	ID            int64    `json:"id,omitempty"`
	Number        string   `json:"number"`
	Name          string   `json:"name"`
	Type          int      `json:"type"`
	DirectionType int      `json:"directionType"`
	TravelTime    *string  `json:"travelTime"`
	Mileage       *float64 `json:"mileage"`
}

// LineFilter holds the line list filters.
type LineFilter struct {
	Type          string
	DirectionType string
}

// Params implements Filter.
func (f LineFilter) Params() map[string]string {
	return map[string]string{"Type": f.Type, "DirectionType": f.DirectionType}
}

// LineSchedule is one departure window of a line.
type LineSchedule struct {
	ID            int64  `json:"id,omitempty"`
	LineID        int64  `json:"lineId"`
	DirectionType int    `json:"directionType"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	DayType       int    `json:"dayType"`
}

// LineScheduleFilter holds the line schedule list filters.
type LineScheduleFilter struct {
	LineID  string
	DayType string
}

// Params implements Filter.
func (f LineScheduleFilter) Params() map[string]string {
	return map[string]string{"LineId": f.LineID, "DayType": f.DayType}
}
