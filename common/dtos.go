package common

// ColumnInfo describes one column of the observed series table
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TagCount holds the number of rows recorded for one tag
type TagCount struct {
	TagName string `json:"tagName"`
	Count   int64  `json:"count"`
}

// Sample is a small tabular preview of the most recent rows
type Sample struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Report gathers everything the verifier observed, ready for display or JSON rendering
type Report struct {
	StorePath    string       `json:"storePath"`
	Tables       []string     `json:"tables"`
	Columns      []ColumnInfo `json:"columns,omitempty"`
	TotalRows    int64        `json:"totalRows"`
	Empty        bool         `json:"empty"`
	MinTimestamp string       `json:"minTimestamp,omitempty"`
	MaxTimestamp string       `json:"maxTimestamp,omitempty"`
	TagCounts    []TagCount   `json:"tagCounts,omitempty"`
	Sample       *Sample      `json:"sample,omitempty"`
	RecentRows   int64        `json:"recentRows"`
}
