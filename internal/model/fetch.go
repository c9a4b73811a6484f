package model

import "time"

// FetchMeta contains HTTP metadata from fetching the dataset
type FetchMeta struct {
	StatusCode   int               `json:"status_code" yaml:"status_code"`
	ContentType  string            `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty" yaml:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// DatasetInfo describes where the loaded dataset came from
type DatasetInfo struct {
	Source   string     `json:"source" yaml:"source"`
	LoadedAt time.Time  `json:"loaded_at" yaml:"loaded_at"`
	Rows     int        `json:"rows" yaml:"rows"`
	Bytes    int        `json:"bytes" yaml:"bytes"`
	Fetch    *FetchMeta `json:"fetch,omitempty" yaml:"fetch,omitempty"`
}
