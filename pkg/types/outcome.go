package types

// DetectionReport is the payload of a detection-only request.
type DetectionReport struct {
	Entries        []string             `json:"files" yaml:"files"`
	Directories    []string             `json:"directories" yaml:"directories"`
	Classification ClassificationResult `json:"xcode_detection" yaml:"xcode_detection"`
}

// ConversionOutcome represents the result of a conversion request.
type ConversionOutcome struct {
	Success        bool                 `json:"success" yaml:"success"`
	InputPath      string               `json:"input_file" yaml:"input_file"`
	OutputPath     string               `json:"output_file" yaml:"output_file"` // Destination with the forced suffix
	EntryCount     int                  `json:"file_count" yaml:"file_count"`
	DirectoryCount int                  `json:"directory_count" yaml:"directory_count"`
	Classification ClassificationResult `json:"xcode_detection" yaml:"xcode_detection"`
	Message        string               `json:"message" yaml:"message"`
	Warning        string               `json:"warning,omitempty" yaml:"warning,omitempty"` // Set when no markers matched
}
