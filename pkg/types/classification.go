package types

const (
	StatusProjectDetected = "valid project structure detected"
	StatusNotAProject     = "not a recognized project"
)

// Marker is a token whose presence in an entry path signals a structural role.
type Marker struct {
	Token    string `json:"token" yaml:"token" mapstructure:"token"`
	Category string `json:"category" yaml:"category" mapstructure:"category"`
}

// MarkerTable is an ordered, read-only list of markers.
// Markers are tried in table order and the first one that matches wins.
type MarkerTable struct {
	markers []Marker
}

// NewMarkerTable builds a table from markers, keeping their order.
// The input slice is copied, so later changes to it do not leak in.
func NewMarkerTable(markers ...Marker) MarkerTable {
	cp := make([]Marker, len(markers))
	copy(cp, markers)
	return MarkerTable{markers: cp}
}

// Len returns the number of markers in the table.
func (t MarkerTable) Len() int {
	return len(t.markers)
}

// At returns the i-th marker in declaration order.
func (t MarkerTable) At(i int) Marker {
	return t.markers[i]
}

// Markers returns a copy of the table contents.
func (t MarkerTable) Markers() []Marker {
	cp := make([]Marker, len(t.markers))
	copy(cp, t.markers)
	return cp
}

// MarkerMatch records one archive entry that matched a marker.
type MarkerMatch struct {
	Path     string `json:"path" yaml:"path"`
	Category string `json:"type" yaml:"type"`
	Marker   string `json:"marker" yaml:"marker"`
}

// ClassificationResult is the outcome of matching a manifest against a MarkerTable.
type ClassificationResult struct {
	HasProject bool                `json:"has_xcode_project" yaml:"has_xcode_project"`
	Matches    []MarkerMatch       `json:"xcode_files" yaml:"xcode_files"`
	ByMarker   map[string][]string `json:"details" yaml:"details"`
	Status     string              `json:"validation_status" yaml:"validation_status"`
}

// StatusFor maps the project flag to its status label.
func StatusFor(hasProject bool) string {
	if hasProject {
		return StatusProjectDetected
	}
	return StatusNotAProject
}
