package core

// ArtifactStore defines the interface for artifact persistence. Implementations
// should be thread-safe and scope artifacts by user identifier. Generated
// image references are stored here keyed by a fresh artifact id.
type ArtifactStore interface {
	Save(userID, artifactID string, data []byte) error
	Get(userID, artifactID string) ([]byte, error)
	List(userID string) ([]string, error)
	Delete(userID, artifactID string) error
}
