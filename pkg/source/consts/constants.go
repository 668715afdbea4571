package consts

const (
	// DefaultDBName is the default database name.
	DefaultDBName = "cohort"

	// TableNameDocuments is the default table/collection name for documents.
	TableNameDocuments = "documents"

	// Column names
	ColSessionID = "session_id"
	ColName      = "name"
	ColText      = "text"
	ColCreatedAt = "created_at"
)
