package constants

// Durable storage keys. These are stable for the lifetime of the
// application; changing them orphans previously persisted data.
const (
	// StudentsKey addresses the JSON-serialized array of student records.
	StudentsKey = "studentHubData"

	// UsersKey addresses the JSON-serialized username -> credential-hash map.
	UsersKey = "studentHubMockUsers"
)
