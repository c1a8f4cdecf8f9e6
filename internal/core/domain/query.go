package domain

import "time"

// ListFilter narrows a documents listing. Zero values mean no filter.
type ListFilter struct {
	Type   DocumentType
	Status DocumentStatus
	Query  string
	Limit  int
	Offset int
}

// MethodInfo describes one selectable method for API consumers.
type MethodInfo struct {
	Name        string  `json:"name"`
	Confidence  float64 `json:"confidence"`
	CostPerPage float64 `json:"cost_per_page"`
	Available   bool    `json:"available"`
	Default     bool    `json:"default"`
}

// MethodCatalog groups both method families as the API reports them.
type MethodCatalog struct {
	OCR        []MethodInfo `json:"ocr_methods"`
	Extraction []MethodInfo `json:"extraction_methods"`
}

// ExportFilter narrows the spreadsheet export of extraction results.
type ExportFilter struct {
	Type DocumentType
	From time.Time
	To   time.Time
}
