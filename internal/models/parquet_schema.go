package models

// ParquetCheckRecord is one row of a run archive.
type ParquetCheckRecord struct {
	Endpoint       string  `parquet:"endpoint"`
	State          string  `parquet:"state"`
	OldDigest      *string `parquet:"old_digest,optional"`
	NewDigest      *string `parquet:"new_digest,optional"`
	OldSize        int64   `parquet:"old_size"`
	NewSize        int64   `parquet:"new_size"`
	StatusCode     int32   `parquet:"status_code"`
	ContentType    *string `parquet:"content_type,optional"`
	LinesAdded     int32   `parquet:"lines_added"`
	LinesDeleted   int32   `parquet:"lines_deleted"`
	ArtifactLink   *string `parquet:"artifact_link,optional"`
	Error          *string `parquet:"error,optional"`
	DurationMillis int64   `parquet:"duration_ms"`
	CheckedAt      int64   `parquet:"checked_at"` // unix millis
	NotifiedOK     int32   `parquet:"notified_ok"`
	NotifiedFailed int32   `parquet:"notified_failed"`
}

// ToParquetRecord flattens a CheckResult into its archive row.
func (cr CheckResult) ToParquetRecord() ParquetCheckRecord {
	return ParquetCheckRecord{
		Endpoint:       cr.Endpoint,
		State:          cr.State.String(),
		OldDigest:      optionalString(cr.OldDigest),
		NewDigest:      optionalString(cr.NewDigest),
		OldSize:        cr.OldSize,
		NewSize:        cr.NewSize,
		StatusCode:     int32(cr.StatusCode),
		ContentType:    optionalString(cr.ContentType),
		LinesAdded:     int32(cr.LinesAdded),
		LinesDeleted:   int32(cr.LinesDeleted),
		ArtifactLink:   optionalString(cr.ArtifactLink),
		Error:          optionalString(cr.Error),
		DurationMillis: cr.Duration.Milliseconds(),
		CheckedAt:      cr.CheckedAt.UnixMilli(),
		NotifiedOK:     int32(cr.NotifiedOK),
		NotifiedFailed: int32(cr.NotifiedFailed),
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
