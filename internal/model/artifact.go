package model

// ArtifactKind identifies what an Artifact carries.
type ArtifactKind string

const (
	KindMenuHTML ArtifactKind = "menu_html" // rendered layer menu
	KindMapURL   ArtifactKind = "map_url"   // GetMap request URL
	KindText     ArtifactKind = "text"      // raw response body
	KindImage    ArtifactKind = "image"     // map image bytes
)

// Artifact is a single result handed to an output.
type Artifact struct {
	Kind        ArtifactKind
	Source      string // URL or file the body came from, if any
	ContentType string
	Body        []byte
}

// IsText reports whether the artifact body is printable text.
func (a Artifact) IsText() bool {
	return a.Kind != KindImage
}
