package core

// AssembleReport merges an inference report with caller-supplied file
// metadata into the final response payload. Pure field composition, no
// computation.
func AssembleReport(rep *InferenceReport, meta FileMeta) *ProcessResponse {
	return &ProcessResponse{
		Status:       "success",
		FileName:     meta.Name,
		FileSize:     meta.SizeBytes,
		TotalRows:    rep.TotalRows,
		TotalColumns: rep.TotalColumns,
		ColumnTypes:  rep.ColumnTypes,
		Columns:      rep.Columns,
		SampleData:   rep.SampleData,
	}
}
