package dto

// ExportFieldResponse describes one selectable CSV column.
type ExportFieldResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ExportFieldGroupResponse groups the selectable columns for the export form.
type ExportFieldGroupResponse struct {
	Label  string                `json:"label"`
	Fields []ExportFieldResponse `json:"fields"`
}

type ExportFieldsResponse struct {
	Groups        []ExportFieldGroupResponse `json:"groups"`
	DefaultFields []string                   `json:"default_fields"`
}
