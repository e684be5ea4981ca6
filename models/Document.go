package models

// Document is the bulk export/import layout: every log plus the known name lists.
// A nil field on import means the section was absent from the file.
type Document struct {
	Logs     []Entry  `json:"logs"`
	Strains  []string `json:"strains"`
	Terpenes []string `json:"terpenes"`
}
