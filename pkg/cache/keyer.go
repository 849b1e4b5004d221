package cache

// SourceKeyOpts identifies a remote body source.
type SourceKeyOpts struct {
	Kind     string `json:"kind"`
	Locator  string `json:"locator"`
	Database string `json:"database,omitempty"`
	Table    string `json:"table,omitempty"`
}

// LayoutKeyOpts holds the layout options that affect the composed layout.
type LayoutKeyOpts struct {
	PixelsPerDecade float64 `json:"pixels_per_decade"`
	MergeThreshold  float64 `json:"merge_threshold"`
}

// ArtifactKeyOpts holds the render options that affect one artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	BasePath string `json:"base_path,omitempty"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Footer   string `json:"footer,omitempty"`
	RawText  bool   `json:"raw_text,omitempty"`
	Images   string `json:"images,omitempty"`
	Zoom     string `json:"zoom,omitempty"`
	Wasm     string `json:"wasm,omitempty"`
	Files    string `json:"files,omitempty"`
	Version  string `json:"version,omitempty"`
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// SourceKey identifies bodies loaded from a remote store.
	SourceKey(opts SourceKeyOpts) string
	// LayoutKey identifies a layout composed from bodies with the given hash.
	LayoutKey(bodiesHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) SourceKey(opts SourceKeyOpts) string {
	return hashKey("source", opts)
}

func (DefaultKeyer) LayoutKey(bodiesHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", bodiesHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
