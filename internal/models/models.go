package models

// MortalityRecord is one row of the mortality dataset.
type MortalityRecord struct {
	MeasureID    uint32  `json:"measure_id"`
	MeasureName  string  `json:"measure_name"`
	LocationID   uint32  `json:"location_id"`
	LocationName string  `json:"location_name"`
	SexID        uint32  `json:"sex_id"`
	SexName      string  `json:"sex_name"`
	AgeID        uint32  `json:"age_id"`
	AgeName      string  `json:"age_name"`
	CauseID      uint32  `json:"cause_id"`
	CauseName    string  `json:"cause_name"`
	MetricID     uint32  `json:"metric_id"`
	MetricName   string  `json:"metric_name"`
	Year         uint32  `json:"year"`
	Val          float64 `json:"val"`
	Upper        float64 `json:"upper"`
	Lower        float64 `json:"lower"`
}

type Prediction struct {
	Location string   `json:"location"`
	Age      uint32   `json:"age"`
	Sex      string   `json:"sex"`
	Causes   []string `json:"causes"`
}

type LocationList struct {
	Locations []string `json:"locations"`
}

// DatasetInfo summarises the loaded store.
type DatasetInfo struct {
	Records     int    `json:"records"`
	Locations   int    `json:"locations"`
	Fingerprint string `json:"fingerprint"`
}
