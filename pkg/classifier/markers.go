package classifier

import "github.com/mrhapile/zip2ipa/pkg/types"

// Marker tokens recognised in an Xcode project archive.
const (
	MarkerProjectBundle = ".xcodeproj"
	MarkerProjectFile   = ".pbxproj"
	MarkerWorkspace     = ".xcworkspace"
	MarkerInfoPlist     = "Info.plist"
	MarkerAssetCatalog  = ".xcassets"
	MarkerStoryboard    = ".storyboard"
	MarkerXib           = ".xib"
	MarkerPodfile       = "Podfile"
	MarkerCartfile      = "Cartfile"
)

// DefaultMarkers is the table used when no other table is configured.
// Order matters: an entry is attributed to the first marker it contains,
// so "MyApp.xcodeproj/project.pbxproj" is a project bundle, not a project file.
var DefaultMarkers = types.NewMarkerTable(
	types.Marker{Token: MarkerProjectBundle, Category: "Xcode Project Bundle"},
	types.Marker{Token: MarkerProjectFile, Category: "Xcode Project File"},
	types.Marker{Token: MarkerWorkspace, Category: "Xcode Workspace"},
	types.Marker{Token: MarkerInfoPlist, Category: "iOS App Configuration"},
	types.Marker{Token: MarkerAssetCatalog, Category: "Asset Catalog"},
	types.Marker{Token: MarkerStoryboard, Category: "Interface Builder File"},
	types.Marker{Token: MarkerXib, Category: "Interface Builder File"},
	types.Marker{Token: MarkerPodfile, Category: "CocoaPods Dependency"},
	types.Marker{Token: MarkerCartfile, Category: "Carthage Dependency"},
)
