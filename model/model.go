package model

import "time"

type Record struct {
	Sector string  `json:"sector"`
	Region string  `json:"region"`
	Impact float64 `json:"impact"`
	// Latitude and Longitude are both set or both nil
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *Record) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

type GeoPoint struct {
	Sector    string  `json:"sector"`
	Region    string  `json:"region"`
	Impact    float64 `json:"impact"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type SnapshotInfo struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Fingerprint string    `json:"fingerprint"`
	LoadedAt    time.Time `json:"loaded_at"`
	RecordCount int       `json:"record_count"`
	Dropped     int       `json:"dropped"`
}
